package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	OwnerLookups          uint64
	ResolverCacheHits     uint64
	ResolverCacheMisses   uint64
	FeedPassesOK          uint64
	FeedPassesFailed      uint64
	SearchPassesOK        uint64
	SearchPassesFailed    uint64
	AggregationCount      uint64
	AggregationTotalNanos int64
}

// InMemoryRecorder stores counters in memory. Tests use it to assert how
// many owner lookups a pass actually issued.
type InMemoryRecorder struct {
	ownerLookups          uint64
	resolverCacheHits     uint64
	resolverCacheMisses   uint64
	feedPassesOK          uint64
	feedPassesFailed      uint64
	searchPassesOK        uint64
	searchPassesFailed    uint64
	aggregationCount      uint64
	aggregationTotalNanos int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		OwnerLookups:          atomic.LoadUint64(&m.ownerLookups),
		ResolverCacheHits:     atomic.LoadUint64(&m.resolverCacheHits),
		ResolverCacheMisses:   atomic.LoadUint64(&m.resolverCacheMisses),
		FeedPassesOK:          atomic.LoadUint64(&m.feedPassesOK),
		FeedPassesFailed:      atomic.LoadUint64(&m.feedPassesFailed),
		SearchPassesOK:        atomic.LoadUint64(&m.searchPassesOK),
		SearchPassesFailed:    atomic.LoadUint64(&m.searchPassesFailed),
		AggregationCount:      atomic.LoadUint64(&m.aggregationCount),
		AggregationTotalNanos: atomic.LoadInt64(&m.aggregationTotalNanos),
	}
}

func (m *InMemoryRecorder) IncOwnerLookup() {
	atomic.AddUint64(&m.ownerLookups, 1)
}

func (m *InMemoryRecorder) IncResolverCacheHit() {
	atomic.AddUint64(&m.resolverCacheHits, 1)
}

func (m *InMemoryRecorder) IncResolverCacheMiss() {
	atomic.AddUint64(&m.resolverCacheMisses, 1)
}

func (m *InMemoryRecorder) IncFeedPass(outcome string) {
	if outcome == "ok" {
		atomic.AddUint64(&m.feedPassesOK, 1)
	} else {
		atomic.AddUint64(&m.feedPassesFailed, 1)
	}
}

func (m *InMemoryRecorder) IncSearchPass(outcome string) {
	if outcome == "ok" {
		atomic.AddUint64(&m.searchPassesOK, 1)
	} else {
		atomic.AddUint64(&m.searchPassesFailed, 1)
	}
}

func (m *InMemoryRecorder) ObserveAggregationDuration(d time.Duration) {
	atomic.AddUint64(&m.aggregationCount, 1)
	atomic.AddInt64(&m.aggregationTotalNanos, d.Nanoseconds())
}
