package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/model"
	"github.com/svitlogram/feedgate/internal/session"
	"github.com/svitlogram/feedgate/internal/testutil"
)

func newAccount(t *testing.T, fake *testutil.FakeAPI) (*Account, session.Store) {
	t.Helper()
	sessions := session.NewMemory()
	client := api.New(fake.URL(), nil, sessions, slog.Default())
	return NewAccount(client, sessions, slog.Default()), sessions
}

func signupInput(username string) model.SignupInput {
	return model.SignupInput{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "hunter22",
	}
}

func TestLoginStoresTokenPair(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t)
	fake.SetCredentials("alice", "s3cret")

	account, sessions := newAccount(t, fake)
	if err := account.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	sess, err := sessions.Session(ctx)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess.AccessToken != testutil.FakeAccessToken || sess.RefreshToken != testutil.FakeRefreshToken {
		t.Fatalf("unexpected stored session: %+v", sess)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t)
	fake.SetCredentials("alice", "s3cret")

	account, sessions := newAccount(t, fake)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong_password", "alice", "nope"},
		{"unknown_user", "mallory", "s3cret"},
		{"empty_username", "", "s3cret"},
		{"empty_password", "alice", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := account.Login(ctx, test.username, test.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	// No failed login may leave tokens behind.
	if _, err := sessions.Token(ctx); !errors.Is(err, session.ErrAnonymous) {
		t.Fatalf("expected anonymous session, got %v", err)
	}
}

func TestLoginThenLogoutEndsAnonymous(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t)
	fake.SetCredentials("alice", "s3cret")

	account, sessions := newAccount(t, fake)
	if err := account.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := account.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	sess, err := sessions.Session(ctx)
	if !errors.Is(err, session.ErrAnonymous) {
		t.Fatalf("expected ErrAnonymous after logout, got %v", err)
	}
	if sess.AccessToken != "" || sess.RefreshToken != "" {
		t.Fatalf("tokens must be cleared, got %+v", sess)
	}
}

func TestLogoutClearsDespiteUpstreamRejection(t *testing.T) {
	// The upstream answers logout with 401 even for valid sessions; the
	// fake mirrors that by default.
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t)
	fake.SetCredentials("alice", "s3cret")

	account, sessions := newAccount(t, fake)
	if err := account.Login(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := account.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := fake.Calls(testutil.RouteLogout); got != 1 {
		t.Fatalf("expected 1 logout call, got %d", got)
	}
	if _, err := sessions.Token(ctx); !errors.Is(err, session.ErrAnonymous) {
		t.Fatalf("expected anonymous session, got %v", err)
	}
}

func TestSignupDuplicateAccount(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t)
	fake.AddUser(model.UserProfile{
		ID:        7,
		Username:  "taken",
		CreatedAt: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	account, sessions := newAccount(t, fake)

	if _, err := account.Signup(ctx, signupInput("taken")); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}

	result, err := account.Signup(ctx, signupInput("fresh"))
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if result.User.Username != "fresh" {
		t.Fatalf("unexpected signup result: %+v", result)
	}

	// Signup never signs the caller in.
	if _, err := sessions.Token(ctx); !errors.Is(err, session.ErrAnonymous) {
		t.Fatalf("expected anonymous session after signup, got %v", err)
	}
}

func TestRefreshStoresNewPair(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t)

	account, sessions := newAccount(t, fake)
	if err := sessions.SetTokens(ctx, testutil.FakeAccessToken, testutil.FakeRefreshToken); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	if err := account.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	sess, err := sessions.Session(ctx)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess.AccessToken != testutil.RefreshedAccessToken || sess.RefreshToken != testutil.RefreshedRefreshToken {
		t.Fatalf("unexpected refreshed session: %+v", sess)
	}
}

func TestRefreshRequiresSession(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	account, _ := newAccount(t, fake)

	if err := account.Refresh(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if got := fake.Calls(testutil.RouteRefresh); got != 0 {
		t.Fatalf("anonymous refresh must stay local, got %d calls", got)
	}
}

func TestProfileLooksUpByUsername(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeAPI(t)
	fake.AddUser(model.UserProfile{ID: 2, Username: "bob", FirstName: "Bob"})

	account, _ := newAccount(t, fake)

	profile, err := account.Profile(ctx, "bob")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.ID != 2 || profile.FirstName != "Bob" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := account.Profile(ctx, "ghost"); !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
