// Package domain contains entity without logic, just meta-data
package domain

import (
	"sync"
	"time"
)

const (
	MaxRoomIDLen      = 50
	MaxDisplayNameLen = 50
)

type (
	ConnID   string
	MemberID string
)

// Member is one participant occupying a slot in exactly one room.
// ID and Name are fixed at join time; only the media flags mutate,
// and those are informational (the relay never enforces them).
// The flags carry their own lock: they are flipped by media events
// while join fanout and HTTP snapshots read them from other goroutines.
type Member struct {
	ID       MemberID
	Name     string
	RoomID   RoomID
	ConnID   ConnID
	JoinedAt time.Time

	mu    sync.Mutex
	audio bool
	video bool
}

// NewMember avoids raw literals in the app layer and keeps construction obvious.
func NewMember(id MemberID, name string, roomID RoomID, connID ConnID) *Member {
	return &Member{
		ID:       id,
		Name:     name,
		RoomID:   roomID,
		ConnID:   connID,
		JoinedAt: time.Now(),
		audio:    true,
		video:    true,
	}
}

func (m *Member) SetMedia(audio, video bool) {
	m.mu.Lock()
	m.audio = audio
	m.video = video
	m.mu.Unlock()
}

func (m *Member) Media() (audio, video bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.audio, m.video
}
