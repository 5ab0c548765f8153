// Package resolver resolves user entities referenced by id or username,
// memoizing outcomes for the lifetime of one aggregation pass.
package resolver

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/svitlogram/feedgate/internal/model"
)

// entry is a memoized resolution outcome. Failures are memoized too, so a
// missing user is not re-fetched within the same pass.
type entry struct {
	profile *model.UserProfile
	err     error
}

// Cache is the per-pass memo table. Entries are write-once per key;
// concurrent resolutions for the same key collapse to one fetch.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	flight  singleflight.Group
}

// NewCache creates an empty cache. Every aggregation pass starts from a
// fresh one, since entities can change between calls.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Resolve returns the memoized outcome for key, calling fetch at most
// once per key across all concurrent callers. The hit result reports
// whether this caller got the outcome without performing the fetch
// itself; exactly one caller per key reports a miss.
func (c *Cache) Resolve(key string, fetch func() (*model.UserProfile, error)) (profile *model.UserProfile, hit bool, err error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.profile, true, e.err
	}
	c.mu.Unlock()

	// The lock is not held across the fetch; singleflight guarantees a
	// single in-flight call per key. The closure only runs for the
	// caller that leads the flight, so fetched marks the one miss.
	var fetched bool
	v, err, _ := c.flight.Do(key, func() (any, error) {
		fetched = true
		p, ferr := fetch()
		c.mu.Lock()
		if _, ok := c.entries[key]; !ok {
			c.entries[key] = entry{profile: p, err: ferr}
		}
		c.mu.Unlock()
		return p, ferr
	})

	profile, _ = v.(*model.UserProfile)
	return profile, !fetched, err
}

// Len returns the number of memoized keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
