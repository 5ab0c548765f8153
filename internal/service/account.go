// Package service provides account and session lifecycle flows on top of
// the API client and session store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/model"
	"github.com/svitlogram/feedgate/internal/session"
)

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrNotSignedIn        = errors.New("not signed in")
)

// Account handles login, signup, logout, token refresh and profile
// lookups, keeping the session store in step with the state machine:
// anonymous -> authenticated -> anonymous.
type Account struct {
	client   *api.Client
	sessions session.Store
	logger   *slog.Logger
}

// NewAccount creates an Account service.
func NewAccount(client *api.Client, sessions session.Store, logger *slog.Logger) *Account {
	return &Account{
		client:   client,
		sessions: sessions,
		logger:   logger.With("component", "service.account"),
	}
}

// Login exchanges credentials for a token pair and stores it.
func (a *Account) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	pair, err := a.client.Login(ctx, username, password)
	if err != nil {
		if isCredentialFailure(err) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("login: %w", err)
	}

	if err := a.sessions.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}

	a.logger.Info("signed in", "username", username)
	return nil
}

// Signup registers a new account. The session is not touched; the caller
// signs in separately, mirroring the upstream email-verification flow.
func (a *Account) Signup(ctx context.Context, input model.SignupInput) (*model.SignupResult, error) {
	result, err := a.client.Signup(ctx, input)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("signup: %w", err)
	}
	return result, nil
}

// Logout invalidates the server-side session and clears the local one.
// The local session is cleared even when the server call fails, so the
// client always ends up anonymous.
func (a *Account) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	// The upstream answers logout with 401, which the client surfaces
	// as ErrUnauthorized after already clearing the store.
	if err != nil && !errors.Is(err, api.ErrUnauthorized) {
		a.logger.Warn("server-side logout failed", "error", err)
	}

	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	a.logger.Info("signed out")
	return nil
}

// Refresh exchanges the stored refresh token for a fresh pair and stores
// it. Refresh is explicit; nothing in this layer refreshes automatically.
func (a *Account) Refresh(ctx context.Context) error {
	sess, err := a.sessions.Session(ctx)
	if err != nil {
		if errors.Is(err, session.ErrAnonymous) {
			return ErrNotSignedIn
		}
		return fmt.Errorf("load session: %w", err)
	}
	if sess.RefreshToken == "" {
		return ErrNotSignedIn
	}

	pair, err := a.client.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}

	if err := a.sessions.SetTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	return nil
}

// Profile fetches a user's public profile by username.
func (a *Account) Profile(ctx context.Context, username string) (*model.UserProfile, error) {
	profile, err := a.client.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// isCredentialFailure reports whether a login error means bad credentials
// rather than infrastructure trouble. The upstream answers 401 for wrong
// credentials and 422 for malformed form input.
func isCredentialFailure(err error) bool {
	if errors.Is(err, api.ErrUnauthorized) {
		return true
	}
	var srvErr *api.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Status >= 400 && srvErr.Status < 500
	}
	return false
}
