package resolver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/metrics"
	"github.com/svitlogram/feedgate/internal/model"
)

// stubFetcher counts lookups and serves a fixed set of users.
type stubFetcher struct {
	mu      sync.Mutex
	users   map[int64]*model.UserProfile
	byID    int64
	byName  int64
	latency time.Duration
}

func (s *stubFetcher) UserByID(ctx context.Context, id int64) (*model.UserProfile, error) {
	atomic.AddInt64(&s.byID, 1)
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, api.ErrNotFound
}

func (s *stubFetcher) UserByUsername(ctx context.Context, username string) (*model.UserProfile, error) {
	atomic.AddInt64(&s.byName, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, api.ErrNotFound
}

func newStub(users ...*model.UserProfile) *stubFetcher {
	s := &stubFetcher{users: make(map[int64]*model.UserProfile)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func TestResolveByIDMemoizesSuccess(t *testing.T) {
	ctx := context.Background()
	stub := newStub(&model.UserProfile{ID: 1, Username: "alice"})
	res := New(stub, nil)

	first, err := res.ByID(ctx, 1)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	second, err := res.ByID(ctx, 1)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}

	if first.Username != "alice" || second.Username != "alice" {
		t.Fatalf("unexpected profiles: %+v %+v", first, second)
	}
	if got := atomic.LoadInt64(&stub.byID); got != 1 {
		t.Fatalf("expected 1 lookup, got %d", got)
	}
}

func TestResolveMemoizesFailure(t *testing.T) {
	ctx := context.Background()
	stub := newStub() // no users
	res := New(stub, nil)

	for i := 0; i < 3; i++ {
		if _, err := res.ByID(ctx, 42); !errors.Is(err, api.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}

	// The failure is memoized; the missing user is fetched once.
	if got := atomic.LoadInt64(&stub.byID); got != 1 {
		t.Fatalf("expected 1 lookup for missing user, got %d", got)
	}
}

func TestConcurrentSameKeyCollapsesToOneCall(t *testing.T) {
	ctx := context.Background()
	stub := newStub(&model.UserProfile{ID: 5, Username: "bob"})
	stub.latency = 20 * time.Millisecond
	res := New(stub, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := res.ByID(ctx, 5); err != nil {
				t.Errorf("ByID: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt64(&stub.byID); got != 1 {
		t.Fatalf("expected single in-flight lookup, got %d", got)
	}
}

func TestIDAndUsernameAreDistinctKeys(t *testing.T) {
	ctx := context.Background()
	stub := newStub(&model.UserProfile{ID: 2, Username: "carol"})
	res := New(stub, nil)

	if _, err := res.ByID(ctx, 2); err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if _, err := res.ByUsername(ctx, "carol"); err != nil {
		t.Fatalf("ByUsername: %v", err)
	}

	if atomic.LoadInt64(&stub.byID) != 1 || atomic.LoadInt64(&stub.byName) != 1 {
		t.Fatalf("expected one lookup per key kind, got id=%d name=%d", stub.byID, stub.byName)
	}
}

func TestFreshResolverStartsEmpty(t *testing.T) {
	ctx := context.Background()
	stub := newStub(&model.UserProfile{ID: 9, Username: "dave"})

	if _, err := New(stub, nil).ByID(ctx, 9); err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if _, err := New(stub, nil).ByID(ctx, 9); err != nil {
		t.Fatalf("ByID: %v", err)
	}

	// Caches are pass-scoped: two resolvers mean two lookups.
	if got := atomic.LoadInt64(&stub.byID); got != 2 {
		t.Fatalf("expected 2 lookups across separate passes, got %d", got)
	}
}

func TestConcurrentResolutionsRecordOneMiss(t *testing.T) {
	ctx := context.Background()
	stub := newStub(&model.UserProfile{ID: 5, Username: "bob"})
	stub.latency = 20 * time.Millisecond
	rec := metrics.NewInMemory()
	res := New(stub, rec)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := res.ByID(ctx, 5); err != nil {
				t.Errorf("ByID: %v", err)
			}
		}()
	}
	wg.Wait()

	// The fetching goroutine is the single miss; everyone who joined
	// its flight or read the memo afterwards counts as a hit.
	snap := rec.Snapshot()
	if snap.ResolverCacheMisses != 1 {
		t.Fatalf("misses = %d, want 1", snap.ResolverCacheMisses)
	}
	if snap.ResolverCacheHits != 9 {
		t.Fatalf("hits = %d, want 9", snap.ResolverCacheHits)
	}
	if snap.OwnerLookups != 1 {
		t.Fatalf("lookups = %d, want 1", snap.OwnerLookups)
	}
}

func TestMetricsCountHitsAndLookups(t *testing.T) {
	ctx := context.Background()
	stub := newStub(&model.UserProfile{ID: 1, Username: "alice"})
	rec := metrics.NewInMemory()
	res := New(stub, rec)

	res.ByID(ctx, 1)
	res.ByID(ctx, 1)
	res.ByID(ctx, 1)

	snap := rec.Snapshot()
	if snap.OwnerLookups != 1 {
		t.Fatalf("expected 1 recorded lookup, got %d", snap.OwnerLookups)
	}
	if snap.ResolverCacheHits != 2 {
		t.Fatalf("expected 2 cache hits, got %d", snap.ResolverCacheHits)
	}
}
