package domain

import (
	"errors"
	"testing"
)

func TestNewPeer(t *testing.T) {
	tests := []struct {
		name    string
		room    RoomName
		stream  StreamName
		wantErr error
	}{
		{name: "valid", room: "r1", stream: "camA", wantErr: nil},
		{name: "missing room", room: "", stream: "camA", wantErr: ErrRoomRequired},
		{name: "missing stream", room: "r1", stream: "", wantErr: ErrStreamRequired},
		{name: "both missing", room: "", stream: "", wantErr: ErrRoomRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			peer, err := NewPeer("sid", tt.room, tt.stream)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewPeer() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPeer() unexpected error: %v", err)
			}
			if peer.Room != tt.room || peer.Stream != tt.stream {
				t.Errorf("NewPeer() = %+v, want room %q stream %q", peer, tt.room, tt.stream)
			}
		})
	}
}
