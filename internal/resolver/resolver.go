package resolver

import (
	"context"
	"strconv"

	"github.com/svitlogram/feedgate/internal/metrics"
	"github.com/svitlogram/feedgate/internal/model"
)

// UserFetcher is the slice of the API client the resolver needs.
type UserFetcher interface {
	UserByID(ctx context.Context, id int64) (*model.UserProfile, error)
	UserByUsername(ctx context.Context, username string) (*model.UserProfile, error)
}

// Resolver resolves users on demand, consulting the pass-scoped cache
// before issuing a network call.
type Resolver struct {
	fetch   UserFetcher
	cache   *Cache
	metrics metrics.Recorder
}

// New creates a Resolver with a fresh cache. One Resolver serves exactly
// one aggregation pass.
func New(fetch UserFetcher, recorder metrics.Recorder) *Resolver {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Resolver{
		fetch:   fetch,
		cache:   NewCache(),
		metrics: recorder,
	}
}

// ByID resolves a user by numeric id.
func (r *Resolver) ByID(ctx context.Context, id int64) (*model.UserProfile, error) {
	return r.resolve("id:"+strconv.FormatInt(id, 10), func() (*model.UserProfile, error) {
		return r.fetch.UserByID(ctx, id)
	})
}

// ByUsername resolves a user by username.
func (r *Resolver) ByUsername(ctx context.Context, username string) (*model.UserProfile, error) {
	return r.resolve("name:"+username, func() (*model.UserProfile, error) {
		return r.fetch.UserByUsername(ctx, username)
	})
}

func (r *Resolver) resolve(key string, fetch func() (*model.UserProfile, error)) (*model.UserProfile, error) {
	profile, hit, err := r.cache.Resolve(key, func() (*model.UserProfile, error) {
		r.metrics.IncOwnerLookup()
		return fetch()
	})
	if hit {
		r.metrics.IncResolverCacheHit()
	} else {
		r.metrics.IncResolverCacheMiss()
	}
	return profile, err
}
