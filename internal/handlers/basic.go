package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"call-insights/internal/models"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthResponse reports the server status and each dependency probe
type HealthResponse struct {
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves /health
type HealthHandler struct {
	responder
	checks  map[string]HealthCheck
	timeout time.Duration
}

// NewHealthHandler creates a health handler; checks may be empty
func NewHealthHandler(checks map[string]HealthCheck, logger *log.Logger) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		checks:    checks,
		timeout:   2 * time.Second,
	}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports server health and the reachability of Postgres and Redis
// @Tags general
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if len(h.checks) == 0 {
		h.sendJSON(w, http.StatusOK, models.BasicResponse{
			Message: "Server is healthy",
			Status:  "success",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{
		Message: "Server is healthy",
		Status:  "success",
		Checks:  make(map[string]string, len(names)),
	}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Printf("Health check %s failed: %v", name, err)
			resp.Checks[name] = "unavailable: " + err.Error()
			resp.Message = "Server is degraded"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	h.sendJSON(w, status, resp)
}
