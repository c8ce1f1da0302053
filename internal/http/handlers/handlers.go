package handlers

import (
	"net/http"

	"eats-backend/internal/logx"
)

// Handlers serves the endpoints that belong to no single resource:
// liveness probes and the catch-all 404.
type Handlers struct {
	logger logx.Logger
}

func New(logger logx.Logger) *Handlers {
	return &Handlers{logger: logger}
}

// Ping answers GET /ping with {"message":"pong"}; load balancers poll it.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead answers HEAD /healthcheck with 204 and no body.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// NotFound renders unknown routes as a JSON 404 instead of the
// default plain-text response.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.logger, w, r, http.StatusNotFound, "route not found")
}
