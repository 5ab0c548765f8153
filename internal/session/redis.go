package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/svitlogram/feedgate/internal/cache"
	"github.com/svitlogram/feedgate/internal/model"
)

// RedisStore persists the session in Redis so it survives restarts and is
// shared by every gateway replica.
type RedisStore struct {
	cache *cache.Cache
	key   string
}

// NewRedis creates a store persisting under the given key.
func NewRedis(c *cache.Cache, key string) *RedisStore {
	return &RedisStore{cache: c, key: key}
}

// Token returns the current bearer token.
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// Session returns the full token pair.
func (s *RedisStore) Session(ctx context.Context) (model.Session, error) {
	sess, err := s.cache.GetSession(ctx, s.key)
	if err != nil {
		if errors.Is(err, cache.ErrNoSession) {
			return model.Session{}, ErrAnonymous
		}
		return model.Session{}, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// SetTokens stores a new token pair.
func (s *RedisStore) SetTokens(ctx context.Context, access, refresh string) error {
	sess := model.Session{AccessToken: access, RefreshToken: refresh}
	if err := s.cache.SetSession(ctx, s.key, sess); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.cache.DeleteSession(ctx, s.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
