// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

type (
	SessionID  string
	RoomName   string
	StreamName string
)

var (
	ErrRoomRequired   = errors.New("room required")
	ErrStreamRequired = errors.New("streamName required")
)

// Peer is a connection's room/stream binding. Both names are set once,
// at join time, and never change afterwards.
// No transport or lifecycle logic here.
type Peer struct {
	ID     SessionID
	Room   RoomName
	Stream StreamName
}

// NewPeer avoids raw literals in adapters and keeps construction obvious.
func NewPeer(id SessionID, room RoomName, stream StreamName) (*Peer, error) {
	if room == "" {
		return nil, ErrRoomRequired
	}
	if stream == "" {
		return nil, ErrStreamRequired
	}
	return &Peer{ID: id, Room: room, Stream: stream}, nil
}
