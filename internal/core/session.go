package core

import (
	"sync"
	"time"

	"github.com/dkaverin/streamcast/internal/domain"
)

// memberSession implements MemberSession by pairing meta + transport.
type memberSession struct {
	peer *domain.Peer
	conn SignalConnection

	mu       sync.RWMutex
	lastSeen time.Time
}

func NewMemberSession(peer *domain.Peer, conn SignalConnection, now time.Time) MemberSession {
	return &memberSession{peer: peer, conn: conn, lastSeen: now}
}

func (m *memberSession) Peer() *domain.Peer       { return m.peer }
func (m *memberSession) Signal() SignalConnection { return m.conn }

func (m *memberSession) Touch(t time.Time) {
	m.mu.Lock()
	// lastSeen is monotonically non-decreasing.
	if t.After(m.lastSeen) {
		m.lastSeen = t
	}
	m.mu.Unlock()
}

func (m *memberSession) LastSeen() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSeen
}
