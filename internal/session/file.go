package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/svitlogram/feedgate/internal/model"
)

// FileStore persists the session as a JSON file so it survives a restart.
// Suited to single-user deployments where Redis is not available.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a store backed by the given file path. The file is
// created on first SetTokens.
func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

// Token returns the current bearer token.
func (s *FileStore) Token(ctx context.Context) (string, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// Session returns the full token pair.
func (s *FileStore) Session(ctx context.Context) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Session{}, ErrAnonymous
		}
		return model.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return model.Session{}, fmt.Errorf("decode session file: %w", err)
	}
	if sess.IsAnonymous() {
		return model.Session{}, ErrAnonymous
	}
	return sess, nil
}

// SetTokens stores a new token pair. The file is written to a temp path
// and renamed so a crash never leaves a half-written session.
func (s *FileStore) SetTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(model.Session{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close session file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
