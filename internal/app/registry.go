package app

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"parley/internal/core"
	"parley/internal/domain"
)

// Registry maps connection ids to live transports and, once a
// connection joins a room, to its member identity. It is the only
// component that touches a SignalConnection; everything above it
// addresses parties by ConnID or MemberID.
type Registry struct {
	mu       sync.RWMutex
	conns    map[domain.ConnID]core.SignalConnection
	members  map[domain.ConnID]*domain.Member
	byMember map[domain.MemberID]domain.ConnID
}

func NewRegistry() *Registry {
	return &Registry{
		conns:    make(map[domain.ConnID]core.SignalConnection),
		members:  make(map[domain.ConnID]*domain.Member),
		byMember: make(map[domain.MemberID]domain.ConnID),
	}
}

func (r *Registry) Register(conn core.SignalConnection) domain.ConnID {
	id := domain.ConnID(uuid.NewString())
	r.mu.Lock()
	r.conns[id] = conn
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("registered connection")
	return id
}

// Unregister forgets the connection. Membership cleanup is the room
// manager's job; the adapter calls Rooms.Leave before this.
func (r *Registry) Unregister(id domain.ConnID) {
	r.mu.Lock()
	if m, ok := r.members[id]; ok {
		delete(r.byMember, m.ID)
		delete(r.members, id)
	}
	delete(r.conns, id)
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unregistered connection")
}

func (r *Registry) BindMember(id domain.ConnID, m *domain.Member) {
	r.mu.Lock()
	r.members[id] = m
	r.byMember[m.ID] = id
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("member", string(m.ID)).Msg("bound member")
}

func (r *Registry) UnbindMember(id domain.ConnID) {
	r.mu.Lock()
	if m, ok := r.members[id]; ok {
		delete(r.byMember, m.ID)
		delete(r.members, id)
	}
	r.mu.Unlock()
}

func (r *Registry) Member(id domain.ConnID) (*domain.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	return m, ok
}

// MemberConn resolves a member id to its connection, the lookup the
// relay does on every forwarded envelope.
func (r *Registry) MemberConn(id domain.MemberID) (domain.ConnID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cid, ok := r.byMember[id]
	return cid, ok
}

// SetMedia flips the member's informational track flags and returns the
// member. The flags themselves are guarded by the member's own lock, so
// concurrent snapshot reads stay race-free.
func (r *Registry) SetMedia(id domain.ConnID, audio, video bool) (*domain.Member, bool) {
	r.mu.RLock()
	m, ok := r.members[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	m.SetMedia(audio, video)
	return m, true
}

// Deliver is best-effort: marshal failures and closed or backpressured
// connections are logged, never propagated into the dispatch path.
func (r *Registry) Deliver(id domain.ConnID, v any) {
	r.mu.RLock()
	conn, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		log.Debug().Str("module", "app.registry").Str("conn", string(id)).Msg("deliver to unknown connection")
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.registry").Msg("deliver marshal")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		log.Warn().Err(err).Str("module", "app.registry").Str("conn", string(id)).Msg("deliver dropped")
	}
}

func (r *Registry) ConnCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
