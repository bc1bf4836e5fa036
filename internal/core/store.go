package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"parley/internal/domain"
)

// RoomStore is the process-wide room table. The store lock covers only
// the map; membership mutations take the room's own lock, so unrelated
// rooms never serialize on each other.
type RoomStore struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomID]*Room
	capacity int
}

func NewRoomStore(capacity int) *RoomStore {
	if capacity <= 0 {
		capacity = domain.DefaultRoomCapacity
	}
	return &RoomStore{
		rooms:    make(map[domain.RoomID]*Room),
		capacity: capacity,
	}
}

// GetOrCreate returns the live room under id, lazily creating it.
// A closed room still sitting in the map is replaced: its teardown
// already happened, only the map entry is stale.
func (s *RoomStore) GetOrCreate(id domain.RoomID) *Room {
	s.mu.RLock()
	room, ok := s.rooms[id]
	s.mu.RUnlock()

	if ok && !room.Closed() {
		return room
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok = s.rooms[id]; ok && !room.Closed() {
		return room
	}
	room = NewRoom(id, s.capacity)
	s.rooms[id] = room
	log.Info().Str("module", "core.store").Str("room", string(id)).Msg("room created")
	return room
}

func (s *RoomStore) Get(id domain.RoomID) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	return room, ok
}

// Delete forgets the map entry only if it still points at room, so a
// stale teardown cannot drop a replacement created in the meantime.
func (s *RoomStore) Delete(id domain.RoomID, room *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.rooms[id]; ok && cur == room {
		delete(s.rooms, id)
		log.Info().Str("module", "core.store").Str("room", string(id)).Msg("room deleted")
	}
}

func (s *RoomStore) List() []*Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

func (s *RoomStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
