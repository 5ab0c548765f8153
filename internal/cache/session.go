package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/svitlogram/feedgate/internal/model"
)

// ErrNoSession is returned when no session hash exists under the key.
var ErrNoSession = errors.New("no session in cache")

const (
	sessionAccessField  = "access_token"
	sessionRefreshField = "refresh_token"
)

// GetSession reads the token pair stored under key.
func (c *Cache) GetSession(ctx context.Context, key string) (model.Session, error) {
	fields, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return model.Session{}, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return model.Session{}, ErrNoSession
	}

	sess := model.Session{
		AccessToken:  fields[sessionAccessField],
		RefreshToken: fields[sessionRefreshField],
	}
	if sess.IsAnonymous() {
		return model.Session{}, ErrNoSession
	}
	return sess, nil
}

// SetSession stores the token pair under key, replacing any previous pair.
func (c *Cache) SetSession(ctx context.Context, key string, sess model.Session) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			sessionAccessField, sess.AccessToken,
			sessionRefreshField, sess.RefreshToken,
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// DeleteSession removes the session stored under key.
func (c *Cache) DeleteSession(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
