package core

import (
	"time"

	"github.com/dkaverin/streamcast/internal/domain"
)

// SignalConnection abstracts the messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend([]byte) error
	Close()
}

// MemberSession binds a domain.Peer and its transport endpoint.
// This is what a room stores and fans out to. The liveness timestamp
// lives here so the heartbeat sweep needs no side table.
type MemberSession interface {
	Peer() *domain.Peer
	Signal() SignalConnection
	Touch(t time.Time)
	LastSeen() time.Time
}

// Member is one registry slot: session keyed by its stable ID.
type Member struct {
	SID     domain.SessionID
	Session MemberSession
}

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"member_count"`
}
