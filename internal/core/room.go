package core

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"parley/internal/domain"
)

// ErrRoomClosed is returned by Add when the room was torn down between
// the store lookup and the membership mutation. Callers re-fetch from
// the store and retry.
var ErrRoomClosed = errors.New("room closed")

// Room is a threadsafe in-memory room with a bounded, ordered member set.
// The members slice keeps join order; byID is the lookup index.
// It never closes adapter-owned resources.
type Room struct {
	id         domain.RoomID
	maxMembers int
	createdAt  time.Time

	mu      sync.RWMutex
	members []*domain.Member
	byID    map[domain.MemberID]*domain.Member
	closed  bool
}

func NewRoom(id domain.RoomID, maxMembers int) *Room {
	if maxMembers <= 0 {
		maxMembers = domain.DefaultRoomCapacity
	}
	return &Room{
		id:         id,
		maxMembers: maxMembers,
		createdAt:  time.Now(),
		byID:       make(map[domain.MemberID]*domain.Member, maxMembers),
	}
}

func (r *Room) ID() domain.RoomID    { return r.id }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) Capacity() int        { return r.maxMembers }

// Add appends m if the room is live and below capacity. The check and
// the append happen under one lock section, so two concurrent joins to
// a room with one free slot cannot both succeed.
func (r *Room) Add(m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomClosed
	}
	if len(r.members) >= r.maxMembers {
		return domain.ErrRoomFull
	}
	r.members = append(r.members, m)
	r.byID[m.ID] = m
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("member", string(m.ID)).Int("count", len(r.members)).Msg("member added")
	return nil
}

// Remove is idempotent. It reports whether the member was present and
// whether the room became empty; an emptied room is closed so no join
// can race into a *Room the store is about to forget.
func (r *Room) Remove(id domain.MemberID) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, false
	}
	delete(r.byID, id)
	for i, m := range r.members {
		if m.ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	if len(r.members) == 0 {
		r.closed = true
	}
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("member", string(id)).Msg("member removed")
	return true, r.closed
}

// CloseIfIdle closes an empty room older than maxAge. Used by the
// reaper only; the synchronous teardown in Remove is the common path.
func (r *Room) CloseIfIdle(maxAge time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return true
	}
	if len(r.members) == 0 && time.Since(r.createdAt) > maxAge {
		r.closed = true
		return true
	}
	return false
}

func (r *Room) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *Room) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Members returns a copy of the member list in join order.
func (r *Room) Members() []*domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Member, len(r.members))
	copy(out, r.members)
	return out
}

func (r *Room) Member(id domain.MemberID) (*domain.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	return m, ok
}
