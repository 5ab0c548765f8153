package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncOwnerLookup()                          {}
func (NoopRecorder) IncResolverCacheHit()                     {}
func (NoopRecorder) IncResolverCacheMiss()                    {}
func (NoopRecorder) IncFeedPass(string)                       {}
func (NoopRecorder) IncSearchPass(string)                     {}
func (NoopRecorder) ObserveAggregationDuration(time.Duration) {}
