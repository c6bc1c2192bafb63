// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// healthResponse is the shape returned by GET /health.
type healthResponse struct {
	Status string `json:"status"`
	Env    string `json:"env"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	env string
}

// NewHealthHandler creates a new health handler reporting env.
func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env}
}

// HandleHealth handles GET /health requests. It always reports ok; the
// registry has no external dependencies that could degrade.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Env: h.env})
}
