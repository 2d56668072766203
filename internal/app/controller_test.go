package app

import (
	"reflect"
	"testing"
	"time"
)

func TestPingGetsOnePongAndIsNotRelayed(t *testing.T) {
	ctl := newTestController()
	now := time.Now()

	sessA, connA := newTestSession(t, "a", "r1", "camA", now)
	sessB, connB := newTestSession(t, "b", "r1", "camB", now)
	ctl.Registry.Join("r1", "a", sessA)
	ctl.Registry.Join("r1", "b", sessB)

	ctl.HandleMessage(sessA, []byte(`{"type":"ping"}`))

	if got := connA.messages(); !reflect.DeepEqual(got, []string{`{"type":"pong"}`}) {
		t.Errorf("pinger got %v, want exactly one pong", got)
	}
	if got := len(connB.messages()); got != 0 {
		t.Errorf("ping leaked to room member: got %d messages, want 0", got)
	}
}

func TestPingUpdatesLastSeen(t *testing.T) {
	ctl := newTestController()
	base := time.Now()

	sessA, _ := newTestSession(t, "a", "r1", "camA", base)
	ctl.Registry.Join("r1", "a", sessA)

	later := base.Add(time.Minute)
	ctl.Clock = func() time.Time { return later }
	ctl.HandleMessage(sessA, []byte(`{"type":"ping"}`))

	if got := sessA.LastSeen(); !got.Equal(later) {
		t.Errorf("LastSeen() = %v, want %v", got, later)
	}
}

func TestNonPingJSONIsRelayed(t *testing.T) {
	ctl := newTestController()
	now := time.Now()

	sessA, _ := newTestSession(t, "a", "r1", "camA", now)
	sessB, connB := newTestSession(t, "b", "r1", "camB", now)
	ctl.Registry.Join("r1", "a", sessA)
	ctl.Registry.Join("r1", "b", sessB)

	raw := `{"type":"offer","sdp":"v=0..."}`
	ctl.HandleMessage(sessA, []byte(raw))

	if got := connB.lastMessage(); got != raw {
		t.Errorf("recipient got %q, want %q", got, raw)
	}
}

func TestMalformedPayloadIsRelayedOpaque(t *testing.T) {
	ctl := newTestController()
	now := time.Now()

	sessA, _ := newTestSession(t, "a", "r1", "camA", now)
	sessB, connB := newTestSession(t, "b", "r1", "camB", now)
	ctl.Registry.Join("r1", "a", sessA)
	ctl.Registry.Join("r1", "b", sessB)

	// Not a ping, not even JSON: still relayed byte-for-byte.
	raw := "hello {not json"
	ctl.HandleMessage(sessA, []byte(raw))

	if got := connB.lastMessage(); got != raw {
		t.Errorf("recipient got %q, want %q", got, raw)
	}
}

func TestRateLimitDropsExcessRelay(t *testing.T) {
	ctl := newTestController()
	ctl.Limiter = NewRateLimiter(1, time.Minute)
	now := time.Now()

	sessA, _ := newTestSession(t, "a", "r1", "camA", now)
	sessB, connB := newTestSession(t, "b", "r1", "camB", now)
	ctl.Registry.Join("r1", "a", sessA)
	ctl.Registry.Join("r1", "b", sessB)

	ctl.HandleMessage(sessA, []byte("one"))
	ctl.HandleMessage(sessA, []byte("two"))

	if got := connB.messages(); !reflect.DeepEqual(got, []string{"one"}) {
		t.Errorf("recipient got %v, want [one]", got)
	}

	// Pings are never rate limited.
	ctl.HandleMessage(sessA, []byte(`{"type":"ping"}`))
}

// The end-to-end membership scenario: joins, relay, leaves.
func TestSessionLifecycleScenario(t *testing.T) {
	ctl := newTestController()
	now := time.Now()

	// A joins r1 with stream camA.
	sessA, connA := newTestSession(t, "a", "r1", "camA", now)
	ctl.Connect(sessA)
	if got := connA.lastMessage(); got != `{"room":"r1","streams":["camA"]}` {
		t.Errorf("after first join A got %q", got)
	}

	// B joins r1 with stream camB: both hear the updated roster.
	sessB, connB := newTestSession(t, "b", "r1", "camB", now)
	ctl.Connect(sessB)
	want := `{"room":"r1","streams":["camA","camB"]}`
	if got := connA.lastMessage(); got != want {
		t.Errorf("after B joined A got %q, want %q", got, want)
	}
	if got := connB.lastMessage(); got != want {
		t.Errorf("after B joined B got %q, want %q", got, want)
	}

	// A says hello: B hears it verbatim, A does not.
	before := len(connA.messages())
	ctl.HandleMessage(sessA, []byte("hello"))
	if got := connB.lastMessage(); got != "hello" {
		t.Errorf("B got %q, want %q", got, "hello")
	}
	if got := len(connA.messages()); got != before {
		t.Errorf("A received its own relay: %d messages, want %d", got, before)
	}

	// B disconnects: A hears the shrunken roster.
	ctl.Disconnect(sessB)
	if got := connA.lastMessage(); got != `{"room":"r1","streams":["camA"]}` {
		t.Errorf("after B left A got %q", got)
	}

	// A disconnects: the room is gone.
	ctl.Disconnect(sessA)
	if got := len(ctl.Registry.Rooms()); got != 0 {
		t.Errorf("Rooms() len = %d, want 0", got)
	}

	// Double disconnect is a no-op.
	ctl.Disconnect(sessA)
}
