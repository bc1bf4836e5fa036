package core

import (
	"testing"

	"parley/internal/domain"
)

func TestRoomStore_GetOrCreateReturnsSameRoom(t *testing.T) {
	s := NewRoomStore(4)
	a := s.GetOrCreate("r")
	b := s.GetOrCreate("r")
	if a != b {
		t.Fatalf("GetOrCreate returned different rooms for the same id")
	}
	if s.Count() != 1 {
		t.Fatalf("Count: got %d, want 1", s.Count())
	}
}

func TestRoomStore_ClosedRoomIsReplaced(t *testing.T) {
	s := NewRoomStore(4)
	old := s.GetOrCreate("r")
	m := newTestMember(0)
	if err := old.Add(m); err != nil {
		t.Fatalf("Add: %v", err)
	}
	old.Remove(m.ID) // closes the room

	fresh := s.GetOrCreate("r")
	if fresh == old {
		t.Fatalf("GetOrCreate returned the closed room")
	}
	if fresh.Closed() {
		t.Fatalf("replacement room is closed")
	}
	if fresh.Count() != 0 {
		t.Fatalf("replacement room not empty: %d members", fresh.Count())
	}
}

func TestRoomStore_DeleteOnlyMatchesSamePointer(t *testing.T) {
	s := NewRoomStore(4)
	old := s.GetOrCreate("r")
	m := newTestMember(0)
	if err := old.Add(m); err != nil {
		t.Fatalf("Add: %v", err)
	}
	old.Remove(m.ID)

	fresh := s.GetOrCreate("r")

	// A stale teardown of the old room must not drop the replacement.
	s.Delete("r", old)
	got, ok := s.Get("r")
	if !ok || got != fresh {
		t.Fatalf("stale Delete removed the replacement room")
	}

	s.Delete("r", fresh)
	if _, ok := s.Get("r"); ok {
		t.Fatalf("Delete with matching pointer left the room behind")
	}
}

func TestRoomStore_CapacityFlowsIntoRooms(t *testing.T) {
	s := NewRoomStore(2)
	r := s.GetOrCreate("r")
	if got := r.Capacity(); got != 2 {
		t.Fatalf("Capacity: got %d, want 2", got)
	}
}

func TestRoomStore_DefaultCapacity(t *testing.T) {
	s := NewRoomStore(0)
	r := s.GetOrCreate("r")
	if got := r.Capacity(); got != domain.DefaultRoomCapacity {
		t.Fatalf("Capacity: got %d, want %d", got, domain.DefaultRoomCapacity)
	}
}
