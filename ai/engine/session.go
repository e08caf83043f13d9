package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/mindsense/ai/memory"
	"github.com/hrygo/mindsense/ai/persona"
)

// Session is one user's live conversation state: their memory store plus
// per-session preferences. All mutation happens under mu, via the engine.
type Session struct {
	ID     string
	UserID string

	mu               sync.Mutex
	store            *memory.Store
	preferredPersona persona.ID
	profanityAllowed bool

	// lastActive is read by the manager while it holds its own lock, and
	// mu can be held across a model call, so this stays lock-free.
	lastActive atomic.Int64 // unix nanoseconds
}

// Store returns the session's memory store.
func (s *Session) Store() *memory.Store {
	return s.store
}

// SetPreferredPersona pins a persona for the session. An empty ID clears
// the preference.
func (s *Session) SetPreferredPersona(id persona.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferredPersona = id
}

// SetProfanityAllowed toggles casual language in persona prompts.
func (s *Session) SetProfanityAllowed(allowed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profanityAllowed = allowed
}

// LastActive reports the session's most recent engine interaction.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

// SessionManagerConfig tunes session lifecycle.
type SessionManagerConfig struct {
	// IdleTTL evicts sessions silent longer than this. Zero means the
	// default of one hour.
	IdleTTL time.Duration

	// MemoryConfig seeds each new session's memory store.
	MemoryConfig memory.Config
}

// SessionManager owns the live sessions, one per user. Idle sessions are
// evicted lazily on access and on Sweep.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	memCfg   memory.Config
	now      func() time.Time

	onEvict func(*Session)
}

const defaultIdleTTL = time.Hour

// NewSessionManager creates a SessionManager.
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		idleTTL:  cfg.IdleTTL,
		memCfg:   cfg.MemoryConfig,
		now:      time.Now,
	}
}

// OnEvict registers a callback invoked for each evicted session. Set once
// during wiring, before traffic.
func (m *SessionManager) OnEvict(fn func(*Session)) {
	m.onEvict = fn
}

// Get returns the user's session, creating one if absent. A session whose
// idle TTL has lapsed is discarded and replaced with a fresh one.
func (m *SessionManager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if s, ok := m.sessions[userID]; ok {
		if now.Sub(s.LastActive()) < m.idleTTL {
			return s
		}
		m.evictLocked(userID, s)
	}

	s := &Session{
		ID:     shortuuid.New(),
		UserID: userID,
		store:  memory.NewStore(m.memCfg),
	}
	s.touch(now)
	m.sessions[userID] = s
	slog.Debug("session created", "session_id", s.ID, "user_id", userID)
	return s
}

// Lookup returns the live session for a user without creating one.
func (m *SessionManager) Lookup(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok || m.now().Sub(s.LastActive()) >= m.idleTTL {
		return nil, false
	}
	return s, true
}

// Sweep evicts every session idle past the TTL and returns how many were
// removed. Call it periodically from the serving layer.
func (m *SessionManager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	evicted := 0
	for userID, s := range m.sessions {
		if now.Sub(s.LastActive()) >= m.idleTTL {
			m.evictLocked(userID, s)
			evicted++
		}
	}
	return evicted
}

// Remove drops a user's session, if any. Used when the user wipes their
// conversation memory.
func (m *SessionManager) Remove(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return false
	}
	m.evictLocked(userID, s)
	return true
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) evictLocked(userID string, s *Session) {
	delete(m.sessions, userID)
	slog.Debug("session evicted", "session_id", s.ID, "user_id", userID)
	if m.onEvict != nil {
		m.onEvict(s)
	}
}
