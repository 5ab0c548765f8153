package handler

import (
	"fmt"
	"net/http"

	"github.com/svitlogram/feedgate/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "feedgate_owner_lookups_total %d\n", snap.OwnerLookups)
	writeMetric(w, "feedgate_resolver_cache_hits_total %d\n", snap.ResolverCacheHits)
	writeMetric(w, "feedgate_resolver_cache_misses_total %d\n", snap.ResolverCacheMisses)

	writeMetric(w, "feedgate_feed_passes_total{outcome=\"ok\"} %d\n", snap.FeedPassesOK)
	writeMetric(w, "feedgate_feed_passes_total{outcome=\"failed\"} %d\n", snap.FeedPassesFailed)
	writeMetric(w, "feedgate_search_passes_total{outcome=\"ok\"} %d\n", snap.SearchPassesOK)
	writeMetric(w, "feedgate_search_passes_total{outcome=\"failed\"} %d\n", snap.SearchPassesFailed)

	writeMetric(w, "feedgate_aggregation_duration_seconds_count %d\n", snap.AggregationCount)
	writeMetric(w, "feedgate_aggregation_duration_seconds_sum %.6f\n", float64(snap.AggregationTotalNanos)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
