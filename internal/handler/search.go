package handler

import (
	"log/slog"
	"net/http"

	"github.com/svitlogram/feedgate/internal/aggregator"
	"github.com/svitlogram/feedgate/internal/handler/dto"
)

// SearchHandler serves combined user and image search.
type SearchHandler struct {
	search *aggregator.Search
	logger *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(search *aggregator.Search, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: logger}
}

// Get handles GET /api/v1/search?q=...
func (h *SearchHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.search.Run(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SearchResponse{Users: result.Users, Images: result.Images})
}
