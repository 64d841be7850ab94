package handlers

import (
	"log"
	"net/http"

	"call-insights/internal/workers"
)

// WorkerStatsSource lists the statistics of running background workers
type WorkerStatsSource interface {
	GetAllStats() []workers.WorkerStats
}

type WorkerStatsResponse struct {
	Workers []workers.WorkerStats `json:"workers"`
	Count   int                   `json:"count"`
}

type WorkersHandler struct {
	responder
	pool WorkerStatsSource
}

func NewWorkersHandler(pool WorkerStatsSource, logger *log.Logger) *WorkersHandler {
	return &WorkersHandler{responder: responder{logger: logger}, pool: pool}
}

// GetStats godoc
// @Summary Worker statistics
// @Description Run counts and outcomes of the background report warmer
// @Tags workers
// @Produce json
// @Success 200 {object} WorkerStatsResponse
// @Router /api/v1/workers/stats [get]
func (h *WorkersHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := []workers.WorkerStats{}
	if h.pool != nil {
		stats = append(stats, h.pool.GetAllStats()...)
	}
	h.sendJSON(w, http.StatusOK, WorkerStatsResponse{Workers: stats, Count: len(stats)})
}
