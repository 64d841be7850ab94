package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"call-insights/internal/analysis"
	"call-insights/internal/metrics"
	"call-insights/internal/models"
	"call-insights/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService turns stored evaluations into dashboard analytics.
// It keeps no state of its own apart from the injected cache and is safe for concurrent use.
type AnalyticsService struct {
	evaluations repositories.EvaluationRepository
	cache       repositories.ReportCache
	analyzer    *analysis.Analyzer
	defaults    analysis.ReportOptions
	metrics     *metrics.Metrics
	logger      *log.Logger
	now         func() time.Time
}

// NewAnalyticsService creates an analytics service.
// cache and m may be nil; a nil analyzer selects analysis.Default.
func NewAnalyticsService(
	evaluations repositories.EvaluationRepository,
	cache repositories.ReportCache,
	analyzer *analysis.Analyzer,
	defaults analysis.ReportOptions,
	m *metrics.Metrics,
	logger *log.Logger,
) *AnalyticsService {
	if analyzer == nil {
		analyzer = analysis.Default
	}
	return &AnalyticsService{
		evaluations: evaluations,
		cache:       cache,
		analyzer:    analyzer,
		defaults:    defaults,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// ReportQuery selects the evaluations to analyze and the size of the result.
// Zero limits use the service defaults.
type ReportQuery struct {
	ClientID       string
	Window         models.DateRange
	TopKeywords    int
	MinOccurrences int
	UseCache       bool
}

// TrendsResult compares keyword frequencies of the requested window against the one before it
type TrendsResult struct {
	ClientID  string                `json:"client_id,omitempty"`
	Current   models.DateRange      `json:"current"`
	Previous  models.DateRange      `json:"previous"`
	Trends    []models.KeywordTrend `json:"trends"`
	FromCache bool                  `json:"from_cache"`
}

// PatternsResult lists the recurring failure phrases of a window
type PatternsResult struct {
	ClientID          string                  `json:"client_id,omitempty"`
	Window            models.DateRange        `json:"window"`
	FailedEvaluations int                     `json:"failed_evaluations"`
	Patterns          []models.FailurePattern `json:"patterns"`
	FromCache         bool                    `json:"from_cache"`
}

// GetReport builds the analysis report for a window, using the cache when allowed.
// Errors wrap models.ErrInvalidRange for bad windows; fetch failures are returned wrapped and not retried.
func (s *AnalyticsService) GetReport(ctx context.Context, q ReportQuery) (*models.AnalysisReport, error) {
	return s.report(ctx, "report", q)
}

// GetTrends reports keyword trends between the previous window and the requested one
func (s *AnalyticsService) GetTrends(ctx context.Context, q ReportQuery) (*TrendsResult, error) {
	report, err := s.report(ctx, "trends", q)
	if err != nil {
		return nil, err
	}
	return &TrendsResult{
		ClientID:  q.ClientID,
		Current:   q.Window,
		Previous:  q.Window.Previous(),
		Trends:    report.TrendingIssues,
		FromCache: report.FromCache,
	}, nil
}

// GetPatterns reports the recurring failure patterns of a window
func (s *AnalyticsService) GetPatterns(ctx context.Context, q ReportQuery) (*PatternsResult, error) {
	report, err := s.report(ctx, "patterns", q)
	if err != nil {
		return nil, err
	}
	return &PatternsResult{
		ClientID:          q.ClientID,
		Window:            q.Window,
		FailedEvaluations: report.FailedEvaluations,
		Patterns:          report.Patterns,
		FromCache:         report.FromCache,
	}, nil
}

// InvalidateCache drops cached reports for a client, or all of them for an empty clientID
func (s *AnalyticsService) InvalidateCache(ctx context.Context, clientID string) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	removed, err := s.cache.Invalidate(ctx, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	s.logger.Printf("Invalidated %d cached reports (client: %q)", removed, clientID)
	return removed, nil
}

// ListClients returns the clients with evaluations in the window
func (s *AnalyticsService) ListClients(ctx context.Context, window models.DateRange) ([]string, error) {
	ids, err := s.evaluations.ListClientIDs(ctx, window)
	if err != nil {
		s.metrics.FetchError()
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return ids, nil
}

func (s *AnalyticsService) report(ctx context.Context, kind string, q ReportQuery) (*models.AnalysisReport, error) {
	startTime := time.Now()

	if err := q.Window.Validate(); err != nil {
		s.metrics.ObserveReport(kind, metrics.OutcomeError, 0)
		return nil, err
	}

	opts := s.options(q)
	key := repositories.ReportKey{
		ClientID:       q.ClientID,
		Window:         q.Window,
		TopKeywords:    opts.TopKeywords,
		MinOccurrences: opts.MinOccurrences,
	}

	if q.UseCache {
		if cached := s.cached(ctx, key); cached != nil {
			s.metrics.ObserveReport(kind, metrics.OutcomeCached, time.Since(startTime))
			return cached, nil
		}
	}

	current, previous, err := s.fetchWindows(ctx, q.ClientID, q.Window)
	if err != nil {
		s.metrics.ObserveReport(kind, metrics.OutcomeError, 0)
		return nil, err
	}

	report := s.analyzer.BuildReport(current, previous, opts)
	report.ID = uuid.NewString()
	report.ClientID = q.ClientID
	report.Start = q.Window.Start
	report.End = q.Window.End
	report.GeneratedAt = s.now().UTC()

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &report); err != nil {
			s.logger.Printf("Failed to cache report %s: %v", key, err)
		}
	}

	elapsed := time.Since(startTime)
	s.metrics.ObserveReport(kind, metrics.OutcomeComputed, elapsed)
	s.metrics.EvaluationsAnalyzed(report.TotalEvaluations, report.FailedEvaluations)
	s.logger.Printf("Built %s for client %q: %d evaluations (%d failed), %d patterns, %d trends in %v",
		kind, q.ClientID, report.TotalEvaluations, report.FailedEvaluations,
		len(report.Patterns), len(report.TrendingIssues), elapsed)

	return &report, nil
}

func (s *AnalyticsService) cached(ctx context.Context, key repositories.ReportKey) *models.AnalysisReport {
	if s.cache == nil {
		return nil
	}

	report, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.CacheLookup(metrics.CacheHit)
		s.logger.Printf("Cache hit for %s", key)
		report.FromCache = true
		return report
	case errors.Is(err, repositories.ErrCacheMiss):
		s.metrics.CacheLookup(metrics.CacheMiss)
	default:
		s.metrics.CacheLookup(metrics.CacheError)
		s.logger.Printf("Cache lookup failed for %s: %v", key, err)
	}
	return nil
}

// fetchWindows loads the requested window and the equally long window before it
func (s *AnalyticsService) fetchWindows(ctx context.Context, clientID string, window models.DateRange) (current, previous []models.EvaluationRecord, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.evaluations.ListEvaluations(gctx, clientID, window)
		if err != nil {
			return fmt.Errorf("failed to fetch evaluations for current window: %w", err)
		}
		current = records
		return nil
	})
	g.Go(func() error {
		records, err := s.evaluations.ListEvaluations(gctx, clientID, window.Previous())
		if err != nil {
			return fmt.Errorf("failed to fetch evaluations for previous window: %w", err)
		}
		previous = records
		return nil
	})

	if err := g.Wait(); err != nil {
		s.metrics.FetchError()
		s.logger.Printf("Evaluation fetch failed (client: %q): %v", clientID, err)
		return nil, nil, err
	}
	return current, previous, nil
}

func (s *AnalyticsService) options(q ReportQuery) analysis.ReportOptions {
	opts := s.defaults
	if q.TopKeywords > 0 {
		opts.TopKeywords = q.TopKeywords
	}
	if q.MinOccurrences > 0 {
		opts.MinOccurrences = q.MinOccurrences
	}
	return opts.WithDefaults()
}
