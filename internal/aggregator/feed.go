// Package aggregator assembles paginated view models from the upstream
// API: the image feed and the combined user/image search. Each call is
// one aggregation pass with its own resolver cache; the returned slices
// are fresh values, never shared state.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/metrics"
	"github.com/svitlogram/feedgate/internal/model"
	"github.com/svitlogram/feedgate/internal/resolver"
)

// Feed aggregates the image feed.
type Feed struct {
	client      *api.Client
	concurrency int
	logger      *slog.Logger
	metrics     metrics.Recorder
}

// NewFeed creates a feed aggregator. concurrency bounds the owner
// resolution fan-out; zero selects the default.
func NewFeed(client *api.Client, concurrency int, logger *slog.Logger, recorder metrics.Recorder) *Feed {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Feed{
		client:      client,
		concurrency: concurrency,
		logger:      logger.With("component", "aggregator.feed"),
		metrics:     recorder,
	}
}

// FeedOptions selects a window of the feed. Zero values mean server
// defaults.
type FeedOptions struct {
	Skip  int
	Limit int
}

// Fetch runs one feed aggregation pass. A failed primary fetch aborts
// the whole pass; failed per-item owner lookups degrade only their item.
func (f *Feed) Fetch(ctx context.Context, opts FeedOptions) ([]model.ImageView, error) {
	passID := ulid.Make().String()
	start := time.Now()

	images, err := f.client.Images(ctx, opts.Skip, opts.Limit)
	if err != nil {
		f.metrics.IncFeedPass("failed")
		return nil, fmt.Errorf("fetch images: %w", err)
	}

	res := resolver.New(f.client, f.metrics)
	views := resolveOwners(ctx, res, images, f.concurrency)

	if err := ctx.Err(); err != nil {
		// Abandoned pass: discard partial results.
		f.metrics.IncFeedPass("failed")
		return nil, err
	}

	f.metrics.IncFeedPass("ok")
	f.metrics.ObserveAggregationDuration(time.Since(start))
	f.logger.Debug("feed pass complete",
		"pass_id", passID,
		"images", len(views),
		"elapsed", time.Since(start),
	)

	return views, nil
}
