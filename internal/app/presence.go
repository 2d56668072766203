package app

import (
	"encoding/json"

	"github.com/dkaverin/streamcast/internal/core"
	"github.com/dkaverin/streamcast/internal/domain"
	"github.com/rs/zerolog/log"
)

// Announcement is the presence payload pushed to every room member on
// each membership change: the live stream identities, in join order.
type Announcement struct {
	Room    domain.RoomName     `json:"room"`
	Streams []domain.StreamName `json:"streams"`
}

// Presence computes and broadcasts membership announcements.
// It reads the registry, never mutates it.
type Presence struct {
	Registry *core.Registry
}

// Announce pushes the room's current stream list to all its members.
// The list and the recipient set come from one snapshot, so an
// announcement never names a member that is not also a recipient.
// Sends are best-effort per recipient; a broken member never aborts
// delivery to the rest. No-op when the room is empty or gone.
func (p *Presence) Announce(room domain.RoomName) {
	members := p.Registry.MembersOf(room)
	if len(members) == 0 {
		return
	}

	streams := make([]domain.StreamName, 0, len(members))
	for _, m := range members {
		streams = append(streams, m.Session.Peer().Stream)
	}
	data, err := json.Marshal(Announcement{Room: room, Streams: streams})
	if err != nil {
		log.Error().Err(err).Str("module", "app.presence").Str("room", string(room)).Msg("marshal announcement")
		return
	}

	sent := 0
	for _, m := range members {
		if err := m.Session.Signal().TrySend(data); err != nil {
			log.Warn().Err(err).Str("module", "app.presence").Str("sid", string(m.SID)).Msg("announce send failed")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.presence").Str("room", string(room)).Int("sent_to", sent).Int("streams", len(streams)).Msg("announced")
}
