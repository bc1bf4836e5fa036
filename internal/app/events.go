package app

import "parley/internal/domain"

// MemberInfo is a read-only view for clients and APIs (no transport fields).
type MemberInfo struct {
	ID    domain.MemberID `json:"id"`
	Name  string          `json:"name"`
	Audio bool            `json:"audio"`
	Video bool            `json:"video"`
}

func NewMemberInfo(m *domain.Member) MemberInfo {
	audio, video := m.Media()
	return MemberInfo{ID: m.ID, Name: m.Name, Audio: audio, Video: video}
}

type memberJoinedEvent struct {
	Type   string        `json:"type"`
	Room   domain.RoomID `json:"room"`
	Member MemberInfo    `json:"member"`
}

type memberLeftEvent struct {
	Type string          `json:"type"`
	Room domain.RoomID   `json:"room"`
	ID   domain.MemberID `json:"id"`
}

type mediaStateEvent struct {
	Type   string        `json:"type"`
	Room   domain.RoomID `json:"room"`
	Member MemberInfo    `json:"member"`
}

type chatEvent struct {
	Type    string              `json:"type"`
	Message *domain.ChatMessage `json:"message"`
}
