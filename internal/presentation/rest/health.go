package rest

import (
	"net/http"
	"time"

	"github.com/geraldpay/bnpl-engine/pkg/postgres"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	db postgres.Pinger
}

// NewHealthHandler creates a health check HTTP handler. Readiness requires
// a responsive database.
func NewHealthHandler(db postgres.Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "bnpl-engine",
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if err := postgres.HealthCheck(r.Context(), h.db, readinessTimeout); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": "bnpl-engine",
	})
}
