package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/svitlogram/feedgate/internal/aggregator"
	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/service"
)

// handleError maps core-layer errors onto the gateway's error envelope.
// Unauthorized outcomes become 401 so presentation can redirect to login.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, aggregator.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "EMPTY_QUERY", "search query must not be blank")
	case errors.Is(err, api.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "SESSION_EXPIRED", "session is invalid; sign in again")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "wrong username or password")
	case errors.Is(err, service.ErrNotSignedIn):
		writeError(w, http.StatusUnauthorized, "NOT_SIGNED_IN", "no active session")
	case errors.Is(err, api.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "entity not found")
	case errors.Is(err, service.ErrDuplicateAccount):
		writeError(w, http.StatusConflict, "DUPLICATE_ACCOUNT", "an account with the same email or username already exists")
	default:
		logger.Error("upstream failure", "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "upstream API unavailable")
	}
}
