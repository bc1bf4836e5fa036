package app

import (
	"html"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"parley/internal/core"
	"parley/internal/domain"
)

// Chat validates and fans a message out to every current member of a
// room, sender included: clients render the server-confirmed copy, not
// a local echo. Messages are never stored.
type Chat struct {
	reg   *Registry
	store *core.RoomStore
}

func NewChat(reg *Registry, store *core.RoomStore) *Chat {
	return &Chat{reg: reg, store: store}
}

func (c *Chat) Send(connID domain.ConnID, roomID domain.RoomID, body string) (*domain.ChatMessage, error) {
	member, ok := c.reg.Member(connID)
	if !ok {
		return nil, domain.ErrNotInRoom
	}
	// Defends against stale client state after a room switch.
	if roomID != member.RoomID {
		return nil, domain.ErrRoomMismatch
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(body) > domain.MaxChatBodyLen {
		return nil, domain.ErrMessageTooLong
	}

	room, ok := c.store.Get(member.RoomID)
	if !ok {
		return nil, domain.ErrNotInRoom
	}
	msg := &domain.ChatMessage{
		ID:         ulid.Make().String(),
		RoomID:     member.RoomID,
		AuthorID:   member.ID,
		AuthorName: member.Name,
		Body:       html.EscapeString(body),
		Kind:       domain.ChatText,
		SentAt:     time.Now(),
	}
	c.broadcast(room, msg)
	return msg, nil
}

// System emits a server-authored notice to a room, same fanout as user
// chat. Bodies are composed server-side from already-sanitized names.
func (c *Chat) System(room *core.Room, body string) {
	msg := &domain.ChatMessage{
		ID:     ulid.Make().String(),
		RoomID: room.ID(),
		Body:   body,
		Kind:   domain.ChatSystem,
		SentAt: time.Now(),
	}
	c.broadcast(room, msg)
}

func (c *Chat) broadcast(room *core.Room, msg *domain.ChatMessage) {
	ev := chatEvent{Type: "chat", Message: msg}
	members := room.Members()
	for _, m := range members {
		c.reg.Deliver(m.ConnID, ev)
	}
	log.Debug().Str("module", "app.chat").Str("room", string(msg.RoomID)).Str("kind", string(msg.Kind)).Int("recipients", len(members)).Msg("chat broadcast")
}
