package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/model"
	"github.com/svitlogram/feedgate/internal/session"
	"github.com/svitlogram/feedgate/internal/testutil"
)

func newSearch(t *testing.T, fake *testutil.FakeAPI) *Search {
	t.Helper()
	client := api.New(fake.URL(), nil, session.NewMemory(), slog.Default())
	return NewSearch(client, 0, slog.Default(), nil)
}

func TestRunRejectsBlankQueries(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	search := newSearch(t, fake)

	for _, query := range []string{"", "   ", "\t\n"} {
		if _, err := search.Run(context.Background(), query); !errors.Is(err, ErrEmptyQuery) {
			t.Fatalf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
	}

	// Blank queries never reach the network.
	if got := fake.Calls(testutil.RouteSearch); got != 0 {
		t.Fatalf("expected 0 search calls, got %d", got)
	}
}

func TestRunTrimsQueryBeforeSending(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.SetSearchResults([]model.UserProfile{userFixture(1, "alice")}, nil)

	result, err := newSearch(t, fake).Run(context.Background(), "  alice  ")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Users) != 1 || result.Users[0].Username != "alice" {
		t.Fatalf("unexpected users: %+v", result.Users)
	}
}

func TestRunSharesResolverAcrossMatchedImages(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	owner := userFixture(3, "carol")
	fake.AddUser(owner)
	fake.SetSearchResults(
		[]model.UserProfile{owner},
		[]model.Image{
			imageFixture(1, ref(3)),
			imageFixture(2, ref(3)),
			imageFixture(3, ref(3)),
		},
	)

	result, err := newSearch(t, fake).Run(context.Background(), "carol")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The matched user comes straight from the payload; the images share
	// one cached owner lookup between them.
	if got := fake.Calls(testutil.RouteUserByID); got != 1 {
		t.Fatalf("expected 1 owner lookup, got %d", got)
	}
	if len(result.Users) != 1 {
		t.Fatalf("expected 1 matched user, got %d", len(result.Users))
	}
	for i, v := range result.Images {
		if v.OwnerStatus != model.OwnerResolved || v.Owner.Username != "carol" {
			t.Fatalf("image %d: %+v", i, v)
		}
	}
}

func TestRunTreatsNotFoundAsEmptyResult(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	// No search results registered: the fake answers 404 like the upstream.

	result, err := newSearch(t, fake).Run(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Users == nil || result.Images == nil {
		t.Fatalf("collections must be non-nil: %+v", result)
	}
	if len(result.Users) != 0 || len(result.Images) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestRunPropagatesUpstreamFailure(t *testing.T) {
	fake := testutil.NewFakeAPI(t)
	fake.ForceStatus(testutil.RouteSearch, 500)

	_, err := newSearch(t, fake).Run(context.Background(), "alice")
	if err == nil {
		t.Fatal("expected an error")
	}

	var srvErr *api.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected *api.ServerError, got %v", err)
	}
}
