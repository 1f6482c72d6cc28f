package agent

import (
	"context"
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one stored exchange half in a conversation session.
type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// SessionStore keeps conversation history per session ID so agents carry
// context across requests.
type SessionStore interface {
	// Turns returns the stored history in chronological order.
	Turns(ctx context.Context, sessionID string) ([]Turn, error)
	// Append adds turns to the end of the session history.
	Append(ctx context.Context, sessionID string, turns ...Turn) error
	// Clear removes all history for the session.
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore is an in-process SessionStore. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]Turn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Turn)}
}

func (s *MemoryStore) Turns(_ context.Context, sessionID string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, turns ...Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turns...)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
