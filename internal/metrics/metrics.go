// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the aggregation layer.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Owner resolution
	IncOwnerLookup()
	IncResolverCacheHit()
	IncResolverCacheMiss()

	// Aggregation passes; outcome is "ok" or "failed"
	IncFeedPass(outcome string)
	IncSearchPass(outcome string)
	ObserveAggregationDuration(d time.Duration)
}

// Snapshotter exposes a snapshot of current counters.
type Snapshotter interface {
	Snapshot() Snapshot
}
