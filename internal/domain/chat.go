package domain

import "time"

const MaxChatBodyLen = 500

type ChatKind string

const (
	ChatText   ChatKind = "text"
	ChatSystem ChatKind = "system"
)

// ChatMessage is ephemeral: built, broadcast once, never stored.
type ChatMessage struct {
	ID         string    `json:"id"`
	RoomID     RoomID    `json:"room"`
	AuthorID   MemberID  `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	Kind       ChatKind  `json:"kind"`
	SentAt     time.Time `json:"sent_at"`
}
