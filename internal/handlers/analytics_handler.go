package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"call-insights/internal/models"
	"call-insights/internal/services"
)

// AnalyticsService is the part of services.AnalyticsService the dashboard endpoints need
type AnalyticsService interface {
	GetReport(ctx context.Context, q services.ReportQuery) (*models.AnalysisReport, error)
	GetTrends(ctx context.Context, q services.ReportQuery) (*services.TrendsResult, error)
	GetPatterns(ctx context.Context, q services.ReportQuery) (*services.PatternsResult, error)
	InvalidateCache(ctx context.Context, clientID string) (int, error)
}

// AnalyticsHandler serves the dashboard analytics endpoints
type AnalyticsHandler struct {
	responder
	service    AnalyticsService
	windowDays int
	now        func() time.Time
}

// NewAnalyticsHandler creates an analytics handler.
// Requests without start and end cover the trailing windowDays days.
func NewAnalyticsHandler(service AnalyticsService, windowDays int, logger *log.Logger) *AnalyticsHandler {
	if windowDays < 1 {
		windowDays = 7
	}
	return &AnalyticsHandler{
		responder:  responder{logger: logger},
		service:    service,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// GetReport godoc
// @Summary Failure analysis report
// @Description Aggregates failure keywords, categories, patterns and trends for a date range
// @Tags analytics
// @Produce json
// @Param start query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string false "Window end (RFC 3339, or inclusive YYYY-MM-DD)"
// @Param client_id query string false "Restrict to one client"
// @Param top query int false "Number of top keywords" default(10)
// @Param min_occurrences query int false "Minimum texts per pattern" default(2)
// @Param use_cache query bool false "Serve from cache when possible" default(true)
// @Success 200 {object} models.AnalysisReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/analytics/report [get]
func (h *AnalyticsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	report, err := h.service.GetReport(r.Context(), q)
	if err != nil {
		h.sendServiceError(w, "report", err)
		return
	}
	h.sendJSON(w, http.StatusOK, report)
}

// GetTrends godoc
// @Summary Keyword trends
// @Description Compares failure keyword frequencies against the preceding window of equal length
// @Tags analytics
// @Produce json
// @Param start query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string false "Window end (RFC 3339, or inclusive YYYY-MM-DD)"
// @Param client_id query string false "Restrict to one client"
// @Param use_cache query bool false "Serve from cache when possible" default(true)
// @Success 200 {object} services.TrendsResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/analytics/trends [get]
func (h *AnalyticsHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	trends, err := h.service.GetTrends(r.Context(), q)
	if err != nil {
		h.sendServiceError(w, "trends", err)
		return
	}
	h.sendJSON(w, http.StatusOK, trends)
}

// GetPatterns godoc
// @Summary Failure patterns
// @Description Lists phrases recurring across failure texts in the window
// @Tags analytics
// @Produce json
// @Param start query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string false "Window end (RFC 3339, or inclusive YYYY-MM-DD)"
// @Param client_id query string false "Restrict to one client"
// @Param min_occurrences query int false "Minimum texts per pattern" default(2)
// @Param use_cache query bool false "Serve from cache when possible" default(true)
// @Success 200 {object} services.PatternsResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/analytics/patterns [get]
func (h *AnalyticsHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	patterns, err := h.service.GetPatterns(r.Context(), q)
	if err != nil {
		h.sendServiceError(w, "patterns", err)
		return
	}
	h.sendJSON(w, http.StatusOK, patterns)
}

// InvalidateCache godoc
// @Summary Invalidate cached reports
// @Description Drops cached reports for one client, or every cached report when client_id is omitted
// @Tags analytics
// @Produce json
// @Param client_id query string false "Client whose reports are dropped"
// @Success 200 {object} models.CacheInvalidationResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/analytics/cache [delete]
func (h *AnalyticsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")

	removed, err := h.service.InvalidateCache(r.Context(), clientID)
	if err != nil {
		h.logger.Printf("Cache invalidation failed (client: %q): %v", clientID, err)
		h.sendError(w, http.StatusServiceUnavailable, "report cache unavailable")
		return
	}

	h.sendJSON(w, http.StatusOK, models.CacheInvalidationResponse{
		ClientID: clientID,
		Removed:  removed,
	})
}

func (h *AnalyticsHandler) parseQuery(w http.ResponseWriter, r *http.Request) (services.ReportQuery, bool) {
	query := r.URL.Query()
	q := services.ReportQuery{ClientID: query.Get("client_id")}

	start, end := query.Get("start"), query.Get("end")
	if start == "" && end == "" {
		q.Window = models.TrailingWindow(h.now(), h.windowDays)
	} else {
		window, err := models.ParseDateRange(start, end)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, err.Error())
			return q, false
		}
		q.Window = window
	}

	var err error
	if q.TopKeywords, err = getIntQueryParam(r, "top", 0); err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return q, false
	}
	if q.MinOccurrences, err = getIntQueryParam(r, "min_occurrences", 0); err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return q, false
	}
	if q.UseCache, err = getBoolQueryParam(r, "use_cache", true); err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return q, false
	}

	return q, true
}

func (h *AnalyticsHandler) sendServiceError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, models.ErrInvalidRange) {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Printf("Failed to build %s: %v", kind, err)
	h.sendError(w, http.StatusServiceUnavailable, "analytics unavailable")
}
