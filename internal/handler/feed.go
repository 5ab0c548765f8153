package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/svitlogram/feedgate/internal/aggregator"
	"github.com/svitlogram/feedgate/internal/handler/dto"
)

// FeedHandler serves the aggregated image feed.
type FeedHandler struct {
	feed   *aggregator.Feed
	logger *slog.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(feed *aggregator.Feed, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, logger: logger}
}

// Get handles GET /api/v1/feed. Optional skip and limit query parameters
// are passed through to the upstream.
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	opts := aggregator.FeedOptions{
		Skip:  queryInt(r, "skip"),
		Limit: queryInt(r, "limit"),
	}

	views, err := h.feed.Fetch(r.Context(), opts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FeedResponse{Data: views, Count: len(views)})
}

// queryInt parses a non-negative integer query parameter; invalid or
// missing values collapse to zero, meaning server default.
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
