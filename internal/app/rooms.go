package app

import (
	"html"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"parley/internal/core"
	"parley/internal/domain"
)

// Rooms is the membership manager: it owns every mutation of the room
// store and keeps the registry's member index in sync. Nothing else
// writes rooms.
type Rooms struct {
	reg   *Registry
	store *core.RoomStore
	chat  *Chat
}

func NewRooms(reg *Registry, store *core.RoomStore, chat *Chat) *Rooms {
	return &Rooms{reg: reg, store: store, chat: chat}
}

// JoinResult is what the joining party gets back. Existing never
// includes the joiner and preserves join order.
type JoinResult struct {
	Room     domain.RoomID
	Member   MemberInfo
	Existing []MemberInfo
	Count    int
	Capacity int
}

// Join validates, enforces the one-room rule and hands the connection a
// fresh member identity. A rejoin after leave or disconnect always
// mints a new member id; there is no resume path.
func (rs *Rooms) Join(connID domain.ConnID, roomID, displayName string) (*JoinResult, error) {
	roomID = strings.TrimSpace(roomID)
	displayName = strings.TrimSpace(displayName)
	if roomID == "" {
		return nil, domain.ErrInvalidRequest("room id is required")
	}
	if len(roomID) > domain.MaxRoomIDLen {
		return nil, domain.ErrInvalidRequest("room id too long")
	}
	if displayName == "" {
		return nil, domain.ErrInvalidRequest("display name is required")
	}
	if len(displayName) > domain.MaxDisplayNameLen {
		return nil, domain.ErrInvalidRequest("display name too long")
	}
	displayName = html.EscapeString(displayName)

	// One room per connection: an active membership elsewhere ends first.
	if _, ok := rs.reg.Member(connID); ok {
		rs.Leave(connID)
	}

	rid := domain.RoomID(roomID)
	member := domain.NewMember(domain.MemberID(ulid.Make().String()), displayName, rid, connID)

	var room *core.Room
	for attempt := 0; ; attempt++ {
		room = rs.store.GetOrCreate(rid)
		err := room.Add(member)
		if err == core.ErrRoomClosed && attempt < 3 {
			// Lost a race with teardown; the next GetOrCreate replaces it.
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	rs.reg.BindMember(connID, member)

	members := room.Members()
	existing := make([]MemberInfo, 0, len(members)-1)
	for _, m := range members {
		if m.ID == member.ID {
			continue
		}
		existing = append(existing, NewMemberInfo(m))
		rs.reg.Deliver(m.ConnID, memberJoinedEvent{Type: "member_joined", Room: rid, Member: NewMemberInfo(member)})
	}
	if rs.chat != nil {
		rs.chat.System(room, member.Name+" joined")
	}

	log.Info().Str("module", "app.rooms").Str("conn", string(connID)).Str("room", string(rid)).Str("member", string(member.ID)).Msg("joined room")
	return &JoinResult{
		Room:     rid,
		Member:   NewMemberInfo(member),
		Existing: existing,
		Count:    len(members),
		Capacity: room.Capacity(),
	}, nil
}

// Leave is idempotent: a connection with no membership is a no-op.
// The last member out tears the room down synchronously; the reaper is
// only a safety net for paths that never reach here.
func (rs *Rooms) Leave(connID domain.ConnID) bool {
	member, ok := rs.reg.Member(connID)
	if !ok {
		return false
	}
	rs.reg.UnbindMember(connID)

	room, ok := rs.store.Get(member.RoomID)
	if !ok {
		return true
	}
	removed, empty := room.Remove(member.ID)
	if !removed {
		return false
	}
	if empty {
		rs.store.Delete(member.RoomID, room)
		log.Info().Str("module", "app.rooms").Str("room", string(member.RoomID)).Msg("room emptied and torn down")
		return true
	}
	for _, m := range room.Members() {
		rs.reg.Deliver(m.ConnID, memberLeftEvent{Type: "member_left", Room: member.RoomID, ID: member.ID})
	}
	if rs.chat != nil {
		rs.chat.System(room, member.Name+" left")
	}
	log.Info().Str("module", "app.rooms").Str("conn", string(connID)).Str("room", string(member.RoomID)).Str("member", string(member.ID)).Msg("left room")
	return true
}

// SetMediaState records the informational audio/video flags and tells
// the rest of the room. The relay never enforces these.
func (rs *Rooms) SetMediaState(connID domain.ConnID, audio, video bool) error {
	member, ok := rs.reg.SetMedia(connID, audio, video)
	if !ok {
		return domain.ErrNotInRoom
	}
	room, ok := rs.store.Get(member.RoomID)
	if !ok {
		return nil
	}
	ev := mediaStateEvent{Type: "media_state", Room: member.RoomID, Member: NewMemberInfo(member)}
	for _, m := range room.Members() {
		if m.ID == member.ID {
			continue
		}
		rs.reg.Deliver(m.ConnID, ev)
	}
	return nil
}

// MemberOf reports the caller's current identity, if joined.
func (rs *Rooms) MemberOf(connID domain.ConnID) (*domain.Member, bool) {
	return rs.reg.Member(connID)
}
