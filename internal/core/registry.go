package core

import (
	"sync"

	"github.com/dkaverin/streamcast/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry is the threadsafe in-memory room -> members mapping.
// Member lists keep join order. A room with no members is deleted,
// never left behind as an empty bucket.
// It never closes adapter-owned resources.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName][]Member
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomName][]Member)}
}

// Join appends the session to the room's member list, creating the
// room on first join. A session already present in the room is left
// in place.
func (r *Registry) Join(room domain.RoomName, sid domain.SessionID, ms MemberSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.rooms[room] {
		if m.SID == sid {
			return
		}
	}
	r.rooms[room] = append(r.rooms[room], Member{SID: sid, Session: ms})
	log.Info().Str("module", "core.registry").Str("sid", string(sid)).Str("room", string(room)).Msg("member joined")
}

// Leave removes the session from the room if present and reports
// whether anything was removed. Safe to call repeatedly; the eviction
// and clean-close paths may race on it.
func (r *Registry) Leave(room domain.RoomName, sid domain.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[room]
	if !ok {
		return false
	}
	for i, m := range members {
		if m.SID != sid {
			continue
		}
		members = append(members[:i], members[i+1:]...)
		if len(members) == 0 {
			delete(r.rooms, room)
		} else {
			r.rooms[room] = members
		}
		log.Info().Str("module", "core.registry").Str("sid", string(sid)).Str("room", string(room)).Msg("member left")
		return true
	}
	return false
}

// MembersOf returns a snapshot of the room's members in join order.
// Callers never see the live slice.
func (r *Registry) MembersOf(room domain.RoomName) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[room]
	out := make([]Member, len(members))
	copy(out, members)
	return out
}

// StreamNamesOf lists the stream identities of the room's members,
// same order as MembersOf.
func (r *Registry) StreamNamesOf(room domain.RoomName) []domain.StreamName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[room]
	out := make([]domain.StreamName, 0, len(members))
	for _, m := range members {
		out = append(out, m.Session.Peer().Stream)
	}
	return out
}

func (r *Registry) Rooms() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for name, members := range r.rooms {
		out = append(out, RoomInfo{Name: name, MemberCount: len(members)})
	}
	return out
}

// Each calls fn for every member of every room, working off a snapshot
// so fn is free to mutate the registry (the heartbeat sweep evicts
// from inside it).
func (r *Registry) Each(fn func(room domain.RoomName, m Member)) {
	r.mu.RLock()
	type entry struct {
		room domain.RoomName
		m    Member
	}
	snapshot := make([]entry, 0)
	for room, members := range r.rooms {
		for _, m := range members {
			snapshot = append(snapshot, entry{room: room, m: m})
		}
	}
	r.mu.RUnlock()

	for _, e := range snapshot {
		fn(e.room, e.m)
	}
}
