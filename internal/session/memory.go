package session

import (
	"context"
	"sync"
)

// MemoryStore is the default single-process backend. A restart drops every
// session.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]User),
	}
}

func (s *MemoryStore) Create(_ context.Context, user User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[token] = user
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (User, bool, error) {
	s.mu.RLock()
	user, ok := s.sessions[token]
	s.mu.RUnlock()

	return user, ok, nil
}

func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	return nil
}
