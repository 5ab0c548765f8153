// Package session holds and persists the current access/refresh token pair.
// The store performs no validation of token contents; expiry is the
// server's concern and surfaces as an unauthorized response.
package session

import (
	"context"
	"errors"

	"github.com/svitlogram/feedgate/internal/model"
)

// ErrAnonymous is returned when no session is held.
var ErrAnonymous = errors.New("no active session")

// Store persists the single client session across aggregation calls.
// Reads and writes are atomic snapshot operations.
type Store interface {
	// Token returns the current bearer token, or ErrAnonymous.
	Token(ctx context.Context) (string, error)

	// Session returns the full token pair, or ErrAnonymous.
	Session(ctx context.Context) (model.Session, error)

	// SetTokens stores a new token pair, replacing any previous one.
	SetTokens(ctx context.Context, access, refresh string) error

	// Clear removes the stored session. Clearing an already
	// anonymous store is not an error.
	Clear(ctx context.Context) error
}
