package handler

import (
	"net/http"

	"github.com/svitlogram/feedgate/internal/cache"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	cache *cache.Cache
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(c *cache.Cache) *HealthHandler {
	return &HealthHandler{cache: c}
}

// Healthz handles GET /healthz: process liveness only.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz: ready once Redis is reachable.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "NOT_READY", "redis unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
