// Package session scopes cart and checkout state to one visitor. Sessions
// live in memory only: carts never survive a restart, only persisted orders
// do.
package session

import (
	"context"
	"sync"
	"time"

	"digital-city/internal/cart"
	"digital-city/internal/checkout"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session holds one visitor's cart and checkout wizard.
type Session struct {
	ID        string
	Cart      *cart.Store
	Checkout  *checkout.Wizard
	CreatedAt time.Time
	LastSeen  time.Time
}

// Manager is the registry of live sessions. Wizards are built through the
// injected factory so the composition root keeps control of their
// dependencies. Sessions idle longer than ttl are dropped; a ttl of zero
// keeps them forever.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	newWizard func(*cart.Store) *checkout.Wizard
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(newWizard func(*cart.Store) *checkout.Wizard, ttl time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		newWizard: newWizard,
		ttl:       ttl,
		logger:    logger.With().Str("component", "session").Logger(),
	}
}

// Get returns an existing session and marks it as seen. Expired sessions are
// dropped and reported as a miss.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.expired(s, time.Now()) {
		delete(m.sessions, id)
		m.logger.Debug().Str("session_id", id).Msg("session expired")
		return nil, false
	}
	s.LastSeen = time.Now()
	return s, true
}

// Create registers a new session with a fresh id, sweeping out any sessions
// that idled past the ttl.
func (m *Manager) Create() *Session {
	store := cart.NewStore(m.logger)
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Cart:      store,
		Checkout:  m.newWizard(store),
		CreatedAt: now,
		LastSeen:  now,
	}

	m.mu.Lock()
	m.prune(now)
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug().Str("session_id", s.ID).Msg("session created")

	return s
}

// GetOrCreate returns the session for id, or a new session when id is empty
// or unknown.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.LastSeen) > m.ttl
}

// prune removes expired sessions. Callers must hold mu.
func (m *Manager) prune(now time.Time) {
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			m.logger.Debug().Str("session_id", id).Msg("session expired")
		}
	}
}

type contextKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session placed by the session middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
