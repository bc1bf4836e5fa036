package app

import (
	"context"
	"testing"
	"time"

	"parley/internal/core"
)

func TestReaper_SweepDeletesOldEmptyRooms(t *testing.T) {
	store := core.NewRoomStore(4)
	store.GetOrCreate("abandoned")
	time.Sleep(2 * time.Millisecond)

	r := &Reaper{store: store, interval: time.Minute, emptyAfter: time.Millisecond}
	if n := r.Sweep(); n != 1 {
		t.Fatalf("Sweep: got %d, want 1", n)
	}
	if _, ok := store.Get("abandoned"); ok {
		t.Fatalf("abandoned room survived the sweep")
	}
}

func TestReaper_SweepKeepsYoungAndOccupiedRooms(t *testing.T) {
	e := newEnv(4)
	connID, _ := e.connect()
	if _, err := e.rooms.Join(connID, "occupied", "alice"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	e.store.GetOrCreate("young")

	r := &Reaper{store: e.store, interval: time.Minute, emptyAfter: time.Hour}
	if n := r.Sweep(); n != 0 {
		t.Fatalf("Sweep: got %d, want 0", n)
	}
	if _, ok := e.store.Get("occupied"); !ok {
		t.Fatalf("occupied room was reaped")
	}
	if _, ok := e.store.Get("young"); !ok {
		t.Fatalf("young empty room was reaped")
	}

	time.Sleep(2 * time.Millisecond)
	old := &Reaper{store: e.store, interval: time.Minute, emptyAfter: time.Millisecond}
	if n := old.Sweep(); n != 1 {
		t.Fatalf("second Sweep: got %d, want 1 (the empty room only)", n)
	}
	if _, ok := e.store.Get("occupied"); !ok {
		t.Fatalf("occupied room was reaped on second sweep")
	}
}

func TestReaper_RunStopsOnContextCancel(t *testing.T) {
	store := core.NewRoomStore(4)
	r := NewReaper(store, time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("reaper did not stop after cancel")
	}
}
