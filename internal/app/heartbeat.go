package app

import (
	"context"
	"time"

	"github.com/dkaverin/streamcast/internal/core"
	"github.com/dkaverin/streamcast/internal/domain"
	"github.com/rs/zerolog/log"
)

// Monitor periodically sweeps all tracked sessions and evicts those
// silent past MaxInactivity. It knows nothing about individual
// events, only timestamps. MaxInactivity must exceed Interval by a
// safety margin so scheduling jitter cannot evict a healthy peer.
type Monitor struct {
	Controller    *Controller
	Interval      time.Duration
	MaxInactivity time.Duration

	// now is swappable for tests.
	now func() time.Time
}

func NewMonitor(ctl *Controller, interval, maxInactivity time.Duration) *Monitor {
	return &Monitor{
		Controller:    ctl,
		Interval:      interval,
		MaxInactivity: maxInactivity,
		now:           time.Now,
	}
}

// Run sweeps on a fixed interval until ctx is canceled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()
	log.Info().Str("module", "app.heartbeat").Dur("interval", m.Interval).Dur("max_inactivity", m.MaxInactivity).Msg("heartbeat monitor started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.heartbeat").Msg("heartbeat monitor stopped")
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Sweep evicts every session whose last activity is older than
// MaxInactivity. Eviction runs the same unregister path as a clean
// close, so racing a concurrent disconnect is harmless.
func (m *Monitor) Sweep() {
	now := m.now()
	m.Controller.Registry.Each(func(room domain.RoomName, member core.Member) {
		idle := now.Sub(member.Session.LastSeen())
		if idle <= m.MaxInactivity {
			return
		}
		log.Info().Str("module", "app.heartbeat").Str("sid", string(member.SID)).Str("room", string(room)).Dur("idle", idle).Msg("evicting stale session")
		m.Controller.Evict(member.Session)
	})
}
