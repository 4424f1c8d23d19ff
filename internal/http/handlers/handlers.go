package handlers

import (
	"net/http"

	"github.com/afercon/delivery-notifier/internal/logx"
)

// Handlers carries the shared dependencies of the service-level endpoints.
type Handlers struct {
	Logger logx.Logger
}

// New creates the base Handlers.
func New(logger logx.Logger) *Handlers {
	return &Handlers{Logger: logger}
}

// Ping answers GET /ping with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead answers HEAD /healthcheck with 204 No Content.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// NotFound answers unknown routes with a JSON 404 body.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
}
