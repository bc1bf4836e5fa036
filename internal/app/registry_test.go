package app

import (
	"testing"

	"parley/internal/domain"
)

func TestRegistry_BindAndResolveMember(t *testing.T) {
	reg := NewRegistry()
	conn := &fakeConn{}
	connID := reg.Register(conn)

	m := domain.NewMember("m-1", "alice", "lobby", connID)
	reg.BindMember(connID, m)

	got, ok := reg.MemberConn("m-1")
	if !ok || got != connID {
		t.Fatalf("MemberConn: got %s/%v, want %s/true", got, ok, connID)
	}
	if mm, ok := reg.Member(connID); !ok || mm.ID != "m-1" {
		t.Fatalf("Member lookup failed")
	}
}

func TestRegistry_UnregisterDropsMemberIndex(t *testing.T) {
	reg := NewRegistry()
	connID := reg.Register(&fakeConn{})
	reg.BindMember(connID, domain.NewMember("m-1", "alice", "lobby", connID))

	reg.Unregister(connID)

	if _, ok := reg.MemberConn("m-1"); ok {
		t.Fatalf("member index survived Unregister")
	}
	if reg.ConnCount() != 0 {
		t.Fatalf("ConnCount: got %d, want 0", reg.ConnCount())
	}
}

func TestRegistry_DeliverIsBestEffort(t *testing.T) {
	reg := NewRegistry()

	// Unknown target: silently ignored.
	reg.Deliver("nope", map[string]string{"type": "x"})

	// Failing transport: logged, not propagated.
	conn := &fakeConn{failSend: true}
	connID := reg.Register(conn)
	reg.Deliver(connID, map[string]string{"type": "x"})

	// Unmarshalable value: logged, not propagated.
	reg.Deliver(connID, make(chan int))
}

func TestRegistry_SetMedia(t *testing.T) {
	reg := NewRegistry()
	connID := reg.Register(&fakeConn{})

	if _, ok := reg.SetMedia(connID, false, false); ok {
		t.Fatalf("SetMedia on unbound connection succeeded")
	}

	reg.BindMember(connID, domain.NewMember("m-1", "alice", "lobby", connID))
	m, ok := reg.SetMedia(connID, false, true)
	if !ok {
		t.Fatalf("SetMedia: got ok=%v", ok)
	}
	audio, video := m.Media()
	if audio != false || video != true {
		t.Fatalf("Media: got audio=%v video=%v, want false/true", audio, video)
	}
}
