package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dkaverin/streamcast/internal/core"
	"github.com/dkaverin/streamcast/internal/domain"
)

// fakeConn records everything sent through it.
type fakeConn struct {
	mu     sync.Mutex
	sent   [][]byte
	fail   bool
	closed int
}

func (f *fakeConn) TrySend(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("send failed")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.sent = append(f.sent, cp)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	f.closed++
	f.mu.Unlock()
}

func (f *fakeConn) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, b := range f.sent {
		out = append(out, string(b))
	}
	return out
}

func (f *fakeConn) lastMessage() string {
	msgs := f.messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

func (f *fakeConn) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func newTestSession(t *testing.T, sid, room, stream string, at time.Time) (core.MemberSession, *fakeConn) {
	t.Helper()
	peer, err := domain.NewPeer(domain.SessionID(sid), domain.RoomName(room), domain.StreamName(stream))
	if err != nil {
		t.Fatalf("NewPeer(%q, %q, %q) error: %v", sid, room, stream, err)
	}
	conn := &fakeConn{}
	return core.NewMemberSession(peer, conn, at), conn
}

func newTestController() *Controller {
	reg := core.NewRegistry()
	return &Controller{
		Registry: reg,
		Presence: &Presence{Registry: reg},
		Relay:    &Relay{Registry: reg},
	}
}
