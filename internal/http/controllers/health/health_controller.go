// Package health contiene el controller para health checks.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ug-competencias/backend/internal/store/core"
)

// HealthController maneja las rutas de health check.
type HealthController struct {
	users   core.UserRepository
	version string
}

func NewHealthController(users core.UserRepository, version string) *HealthController {
	return &HealthController{users: users, version: version}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// Healthz maneja GET /healthz. Liveness, no toca el storage.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: c.version})
}

// Readyz maneja GET /readyz. Readiness con ping al storage.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.users.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Version: c.version, Storage: "down"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ready", Version: c.version, Storage: "up"})
}

func writeJSON(w http.ResponseWriter, status int, v healthResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
