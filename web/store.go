package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"connectfour-local/engine"
	"connectfour-local/types"
)

// Session is one game played in one browser page. The engine is not safe for
// concurrent use, so every access goes through mu.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	eng      engine.GameEngine
	lastSeen time.Time
}

// Move plays column and returns the outcome together with the new state.
func (s *Session) Move(column int) (types.MoveOutcome, *types.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	out, err := s.eng.AttemptMove(column)
	if err != nil {
		return out, nil, err
	}
	return out, s.eng.CurrentState(), nil
}

// Preview returns the landing row for column without changing anything.
func (s *Session) Preview(column int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.eng.PreviewLandingRow(column)
}

// Reset starts a fresh game in this session.
func (s *Session) Reset() *types.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.eng.Reset()
	return s.eng.CurrentState()
}

// State returns a snapshot of the game.
func (s *Session) State() *types.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.eng.CurrentState()
}

// Names returns the player names of the session's engine.
func (s *Session) Names() engine.GameConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Config()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// EngineFactory builds the engine for a new session. The session ID is passed
// so the engine's notifications can be routed back to that session.
type EngineFactory func(sessionID string) engine.GameEngine

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*Session{},
	}
}

// Create registers a new session with a fresh engine.
func (m *MemoryStore) Create(newEngine EngineFactory) *Session {
	now := time.Now()
	id := uuid.NewString()
	s := &Session{
		ID:       id,
		Created:  now,
		eng:      newEngine(id),
		lastSeen: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return s
}

func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session and reports whether it existed.
func (m *MemoryStore) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// PruneIdle removes sessions not used since now-maxIdle and returns their IDs.
func (m *MemoryStore) PruneIdle(maxIdle time.Duration, now time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pruned []string
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > maxIdle {
			delete(m.sessions, id)
			pruned = append(pruned, id)
		}
	}
	return pruned
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
