package routes

import (
	"net/http"

	"call-insights/internal/handlers"

	"github.com/gorilla/mux"
)

// Handlers groups everything RegisterRoutes mounts. Nil handlers are skipped.
type Handlers struct {
	Health    *handlers.HealthHandler
	Home      http.HandlerFunc
	Analytics *handlers.AnalyticsHandler
	Analysis  *handlers.AnalysisHandler
	Workers   *handlers.WorkersHandler
	Metrics   http.Handler
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	// Health endpoints
	if h.Health != nil {
		router.HandleFunc("/health", h.Health.HealthCheck).Methods(http.MethodGet)
	}
	if h.Metrics != nil {
		router.Handle("/metrics", h.Metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	// Dashboard analytics over stored evaluations
	if h.Analytics != nil {
		api.HandleFunc("/analytics/report", h.Analytics.GetReport).Methods(http.MethodGet)
		api.HandleFunc("/analytics/trends", h.Analytics.GetTrends).Methods(http.MethodGet)
		api.HandleFunc("/analytics/patterns", h.Analytics.GetPatterns).Methods(http.MethodGet)
		api.HandleFunc("/analytics/cache", h.Analytics.InvalidateCache).Methods(http.MethodDelete)
	}

	// Stateless text mining
	if h.Analysis != nil {
		api.HandleFunc("/analysis/keywords", h.Analysis.ExtractKeywords).Methods(http.MethodPost)
		api.HandleFunc("/analysis/categorize", h.Analysis.Categorize).Methods(http.MethodPost)
		api.HandleFunc("/analysis/normalize", h.Analysis.Normalize).Methods(http.MethodPost)
		api.HandleFunc("/analysis/patterns", h.Analysis.DetectPatterns).Methods(http.MethodPost)
		api.HandleFunc("/analysis/trends", h.Analysis.AnalyzeTrends).Methods(http.MethodPost)
	}

	if h.Workers != nil {
		api.HandleFunc("/workers/stats", h.Workers.GetStats).Methods(http.MethodGet)
	}

	// Main routes
	if h.Home != nil {
		router.HandleFunc("/", h.Home).Methods(http.MethodGet)
	}
}
