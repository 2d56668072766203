package app

import (
	"encoding/json"
	"time"

	"github.com/dkaverin/streamcast/internal/core"
	"github.com/rs/zerolog/log"
)

var pongPayload = []byte(`{"type":"pong"}`)

// Controller is the session lifecycle orchestrator: the single place
// a session gets registered, fed messages, and torn down. Transport
// adapters call into it; it never touches transport internals beyond
// the SignalConnection contract.
type Controller struct {
	Registry *core.Registry
	Presence *Presence
	Relay    *Relay
	Limiter  *RateLimiter // nil means unlimited

	// Clock is swappable for tests; nil means time.Now.
	Clock func() time.Time
}

func (c *Controller) clock() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Connect registers an already-validated session in its room and
// announces the new membership. The adapter rejects connections with
// missing parameters before a session ever exists.
func (c *Controller) Connect(sess core.MemberSession) {
	peer := sess.Peer()
	sess.Touch(c.clock())
	c.Registry.Join(peer.Room, peer.ID, sess)
	c.Presence.Announce(peer.Room)
}

// HandleMessage routes one inbound payload. A well-formed liveness
// ping refreshes the session's timestamp and gets exactly one pong;
// everything else, including payloads that are not valid JSON, is
// relayed opaque to the rest of the room.
func (c *Controller) HandleMessage(sess core.MemberSession, raw []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Type == "ping" {
		sess.Touch(c.clock())
		if err := sess.Signal().TrySend(pongPayload); err != nil {
			log.Warn().Err(err).Str("module", "app.controller").Str("sid", string(sess.Peer().ID)).Msg("pong send failed")
		}
		return
	}

	peer := sess.Peer()
	if c.Limiter != nil && !c.Limiter.Allow(peer.ID) {
		log.Warn().Str("module", "app.controller").Str("sid", string(peer.ID)).Msg("relay rate limit exceeded, dropping message")
		return
	}
	c.Relay.Fanout(peer.Room, peer.ID, raw)
}

// Disconnect unregisters the session and announces the shrunken
// membership. Idempotent: the clean-close and eviction paths may both
// land here, only the first one past the registry does any work.
func (c *Controller) Disconnect(sess core.MemberSession) {
	peer := sess.Peer()
	removed := c.Registry.Leave(peer.Room, peer.ID)
	if c.Limiter != nil {
		c.Limiter.Forget(peer.ID)
	}
	if !removed {
		return
	}
	c.Presence.Announce(peer.Room)
}

// Evict force-closes the transport and runs the clean-close path.
func (c *Controller) Evict(sess core.MemberSession) {
	sess.Signal().Close()
	c.Disconnect(sess)
}
