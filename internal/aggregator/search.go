package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/metrics"
	"github.com/svitlogram/feedgate/internal/model"
	"github.com/svitlogram/feedgate/internal/resolver"
)

// Search aggregates combined user and image search results.
type Search struct {
	client      *api.Client
	concurrency int
	logger      *slog.Logger
	metrics     metrics.Recorder
}

// NewSearch creates a search aggregator.
func NewSearch(client *api.Client, concurrency int, logger *slog.Logger, recorder metrics.Recorder) *Search {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Search{
		client:      client,
		concurrency: concurrency,
		logger:      logger.With("component", "aggregator.search"),
		metrics:     recorder,
	}
}

// Run executes one search pass. Blank queries are rejected locally. All
// matched images share one resolver cache, so an owner appearing behind
// several images is fetched at most once. The upstream answers 404 when
// nothing matches; that is an empty result, not a failure.
func (s *Search) Run(ctx context.Context, query string) (*model.SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	passID := ulid.Make().String()
	start := time.Now()

	payload, err := s.client.SearchAll(ctx, trimmed)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			s.metrics.IncSearchPass("ok")
			return &model.SearchResult{Users: []model.UserProfile{}, Images: []model.ImageView{}}, nil
		}
		s.metrics.IncSearchPass("failed")
		return nil, fmt.Errorf("search %q: %w", trimmed, err)
	}

	res := resolver.New(s.client, s.metrics)
	images := resolveOwners(ctx, res, payload.Images, s.concurrency)

	if err := ctx.Err(); err != nil {
		s.metrics.IncSearchPass("failed")
		return nil, err
	}

	users := payload.Users
	if users == nil {
		users = []model.UserProfile{}
	}

	s.metrics.IncSearchPass("ok")
	s.metrics.ObserveAggregationDuration(time.Since(start))
	s.logger.Debug("search pass complete",
		"pass_id", passID,
		"users", len(users),
		"images", len(images),
		"elapsed", time.Since(start),
	)

	return &model.SearchResult{Users: users, Images: images}, nil
}
