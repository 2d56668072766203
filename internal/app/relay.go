package app

import (
	"github.com/dkaverin/streamcast/internal/core"
	"github.com/dkaverin/streamcast/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay fans inbound application messages out to the sender's room.
// Payloads are opaque: forwarded byte-for-byte, never reserialized.
type Relay struct {
	Registry *core.Registry
}

// Fanout sends raw to every current member of room except the sender
// and reports how many sends succeeded. Per-recipient failures are
// logged and skipped. Per-sender ordering holds because each
// connection's read loop delivers serially.
func (r *Relay) Fanout(room domain.RoomName, from domain.SessionID, raw []byte) int {
	sent := 0
	for _, m := range r.Registry.MembersOf(room) {
		if m.SID == from {
			continue
		}
		if err := m.Session.Signal().TrySend(raw); err != nil {
			log.Warn().Err(err).Str("module", "app.relay").Str("sid", string(m.SID)).Msg("relay send failed")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.relay").Str("room", string(room)).Str("from", string(from)).Int("sent_to", sent).Msg("relayed")
	return sent
}
