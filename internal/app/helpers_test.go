package app

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"parley/internal/core"
	"parley/internal/domain"
)

// fakeConn records every frame handed to TrySend.
type fakeConn struct {
	mu       sync.Mutex
	frames   []core.Frame
	failSend bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errors.New("send failed")
	}
	cp := make(core.Frame, len(fr))
	copy(cp, fr)
	f.frames = append(f.frames, cp)
	return nil
}

func (f *fakeConn) Close() {}

// events decodes all recorded frames into generic maps.
func (f *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("decode frame %q: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeConn) eventsOfType(t *testing.T, typ string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ev := range f.events(t) {
		if ev["type"] == typ {
			out = append(out, ev)
		}
	}
	return out
}

type env struct {
	reg   *Registry
	store *core.RoomStore
	chat  *Chat
	rooms *Rooms
	relay *Relay
}

func newEnv(capacity int) *env {
	reg := NewRegistry()
	store := core.NewRoomStore(capacity)
	chat := NewChat(reg, store)
	return &env{
		reg:   reg,
		store: store,
		chat:  chat,
		rooms: NewRooms(reg, store, chat),
		relay: NewRelay(reg),
	}
}

func (e *env) connect() (domain.ConnID, *fakeConn) {
	conn := &fakeConn{}
	return e.reg.Register(conn), conn
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	return domain.AsError(err).Code
}
