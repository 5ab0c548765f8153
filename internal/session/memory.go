package session

import (
	"context"
	"sync"

	"github.com/svitlogram/feedgate/internal/model"
)

// MemoryStore keeps the session in process memory. It does not survive a
// restart; intended for tests and throwaway runs.
type MemoryStore struct {
	mu   sync.RWMutex
	sess model.Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the current bearer token.
func (s *MemoryStore) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess.IsAnonymous() {
		return "", ErrAnonymous
	}
	return s.sess.AccessToken, nil
}

// Session returns the full token pair.
func (s *MemoryStore) Session(ctx context.Context) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess.IsAnonymous() {
		return model.Session{}, ErrAnonymous
	}
	return s.sess, nil
}

// SetTokens stores a new token pair.
func (s *MemoryStore) SetTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = model.Session{AccessToken: access, RefreshToken: refresh}
	return nil
}

// Clear removes the stored session.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = model.Session{}
	return nil
}
