package session

import (
	"sync"

	"github.com/hupe1980/matchday/core"
)

// InMemoryStore is a volatile core.Store implementation holding session
// context in a process-local map. It is safe for concurrent access and best
// suited for tests or ephemeral demo servers.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

var _ core.Store = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]map[string]string)}
}

// Get returns the value for a key, or "" when session or key is absent.
func (s *InMemoryStore) Get(sessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID][key], nil
}

// Set stores a key/value pair, creating the session implicitly.
func (s *InMemoryStore) Set(sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = make(map[string]string)
		s.sessions[sessionID] = sess
	}
	sess[key] = value
	return nil
}

// GetAll returns a copy of the session's full context mapping.
func (s *InMemoryStore) GetAll(sessionID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.sessions[sessionID]))
	for k, v := range s.sessions[sessionID] {
		out[k] = v
	}
	return out, nil
}

// Clear removes the session's entire mapping.
func (s *InMemoryStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
