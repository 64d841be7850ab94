package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"call-insights/internal/analysis"
	"call-insights/internal/metrics"
	"call-insights/internal/models"
	"call-insights/internal/repositories"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mocks
// ============================================================================

type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) ListEvaluations(ctx context.Context, clientID string, window models.DateRange) ([]models.EvaluationRecord, error) {
	args := m.Called(ctx, clientID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EvaluationRecord), args.Error(1)
}

func (m *MockEvaluationRepository) ListClientIDs(ctx context.Context, window models.DateRange) ([]string, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Get(ctx context.Context, key repositories.ReportKey) (*models.AnalysisReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisReport), args.Error(1)
}

func (m *MockReportCache) Set(ctx context.Context, key repositories.ReportKey, report *models.AnalysisReport) error {
	args := m.Called(ctx, key, report)
	return args.Error(0)
}

func (m *MockReportCache) Invalidate(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

// ============================================================================
// Test Setup
// ============================================================================

var (
	testCurrent  = models.DateRange{Start: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)}
	testPrevious = models.DateRange{Start: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)}
)

func setupTestAnalyticsService(t *testing.T, cache repositories.ReportCache) (*AnalyticsService, *MockEvaluationRepository, *metrics.Metrics) {
	repo := new(MockEvaluationRepository)
	m := metrics.New(prometheus.NewRegistry())
	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)

	service := NewAnalyticsService(repo, cache, nil, analysis.DefaultReportOptions(), m, logger)
	service.now = func() time.Time { return time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC) }
	return service, repo, m
}

func evaluationAt(id string, at time.Time, reasons string) models.EvaluationRecord {
	return models.EvaluationRecord{
		ID:             id,
		CallID:         "call-" + id,
		ClientID:       "dealer-1",
		EvaluatedAt:    at,
		FailureReasons: json.RawMessage(reasons),
	}
}

func currentEvaluations() []models.EvaluationRecord {
	day := testCurrent.Start.Add(9 * time.Hour)
	return []models.EvaluationRecord{
		evaluationAt("c1", day, `["Agent hallucinated a trade-in discount"]`),
		evaluationAt("c2", day.Add(24*time.Hour), `["Agent hallucinated a trade-in discount"]`),
		evaluationAt("c3", day.Add(48*time.Hour), `null`),
	}
}

func previousEvaluations() []models.EvaluationRecord {
	return []models.EvaluationRecord{
		evaluationAt("p1", testPrevious.Start.Add(9*time.Hour), `["Transcription garbled the stock number"]`),
	}
}

// ============================================================================
// GetReport
// ============================================================================

func TestGetReport_ComputesFromBothWindows(t *testing.T) {
	service, repo, m := setupTestAnalyticsService(t, nil)
	ctx := context.Background()

	repo.On("ListEvaluations", mock.Anything, "dealer-1", testCurrent).Return(currentEvaluations(), nil)
	repo.On("ListEvaluations", mock.Anything, "dealer-1", testPrevious).Return(previousEvaluations(), nil)

	report, err := service.GetReport(ctx, ReportQuery{ClientID: "dealer-1", Window: testCurrent})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "dealer-1", report.ClientID)
	assert.Equal(t, testCurrent.Start, report.Start)
	assert.Equal(t, testCurrent.End, report.End)
	assert.Equal(t, time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
	assert.Equal(t, 3, report.TotalEvaluations)
	assert.Equal(t, 2, report.FailedEvaluations)
	assert.False(t, report.FromCache)
	assert.Equal(t, []models.CategoryCount{{Category: models.CategoryHallucination, Count: 2}}, report.FailureCategories)
	require.NotEmpty(t, report.Patterns)
	require.NotEmpty(t, report.TrendingIssues)

	repo.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsCounter(t, m, "report", metrics.OutcomeComputed)))
}

func TestGetReport_InvalidRange(t *testing.T) {
	service, repo, _ := setupTestAnalyticsService(t, nil)

	_, err := service.GetReport(context.Background(), ReportQuery{
		Window: models.DateRange{Start: testCurrent.End, End: testCurrent.Start},
	})

	assert.ErrorIs(t, err, models.ErrInvalidRange)
	repo.AssertNotCalled(t, "ListEvaluations", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReport_FetchErrorIsPropagated(t *testing.T) {
	service, repo, _ := setupTestAnalyticsService(t, nil)
	dbErr := errors.New("connection reset")

	repo.On("ListEvaluations", mock.Anything, "", testCurrent).Return(nil, dbErr).Once()
	repo.On("ListEvaluations", mock.Anything, "", testPrevious).Return(previousEvaluations(), nil).Maybe()

	report, err := service.GetReport(context.Background(), ReportQuery{Window: testCurrent})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "failed to fetch evaluations")
	// no retry
	repo.AssertNumberOfCalls(t, "ListEvaluations", 2)
}

func TestGetReport_EmptyWindow(t *testing.T) {
	service, repo, _ := setupTestAnalyticsService(t, nil)

	repo.On("ListEvaluations", mock.Anything, "", mock.Anything).Return([]models.EvaluationRecord{}, nil)

	report, err := service.GetReport(context.Background(), ReportQuery{Window: testCurrent})
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalEvaluations)
	assert.Empty(t, report.TopFailureKeywords)
	assert.Empty(t, report.Patterns)
	assert.Empty(t, report.TrendingIssues)
}

func TestGetReport_QueryLimitsOverrideDefaults(t *testing.T) {
	cache := new(MockReportCache)
	service, repo, _ := setupTestAnalyticsService(t, cache)

	repo.On("ListEvaluations", mock.Anything, "dealer-1", mock.Anything).Return(currentEvaluations(), nil)

	expectedKey := repositories.ReportKey{ClientID: "dealer-1", Window: testCurrent, TopKeywords: 2, MinOccurrences: 3}
	cache.On("Set", mock.Anything, expectedKey, mock.Anything).Return(nil)

	report, err := service.GetReport(context.Background(), ReportQuery{
		ClientID:       "dealer-1",
		Window:         testCurrent,
		TopKeywords:    2,
		MinOccurrences: 3,
	})
	require.NoError(t, err)

	assert.Len(t, report.TopFailureKeywords, 2)
	assert.Empty(t, report.Patterns)
	cache.AssertExpectations(t)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

// ============================================================================
// Cache behaviour
// ============================================================================

func TestGetReport_CacheHit(t *testing.T) {
	cache := new(MockReportCache)
	service, repo, m := setupTestAnalyticsService(t, cache)

	cached := &models.AnalysisReport{ID: "cached-report", ClientID: "dealer-1"}
	cache.On("Get", mock.Anything, mock.Anything).Return(cached, nil)

	report, err := service.GetReport(context.Background(), ReportQuery{ClientID: "dealer-1", Window: testCurrent, UseCache: true})
	require.NoError(t, err)

	assert.Equal(t, "cached-report", report.ID)
	assert.True(t, report.FromCache)
	repo.AssertNotCalled(t, "ListEvaluations", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsCounter(t, m, "report", metrics.OutcomeCached)))
}

func TestGetReport_CacheMissStoresReport(t *testing.T) {
	cache := new(MockReportCache)
	service, repo, _ := setupTestAnalyticsService(t, cache)

	repo.On("ListEvaluations", mock.Anything, "dealer-1", testCurrent).Return(currentEvaluations(), nil)
	repo.On("ListEvaluations", mock.Anything, "dealer-1", testPrevious).Return(previousEvaluations(), nil)
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, repositories.ErrCacheMiss)
	cache.On("Set", mock.Anything, mock.Anything, mock.MatchedBy(func(r *models.AnalysisReport) bool {
		return r.TotalEvaluations == 3 && r.ID != ""
	})).Return(nil)

	report, err := service.GetReport(context.Background(), ReportQuery{ClientID: "dealer-1", Window: testCurrent, UseCache: true})
	require.NoError(t, err)

	assert.False(t, report.FromCache)
	cache.AssertExpectations(t)
}

func TestGetReport_CacheFailuresAreNotFatal(t *testing.T) {
	cache := new(MockReportCache)
	service, repo, _ := setupTestAnalyticsService(t, cache)

	repo.On("ListEvaluations", mock.Anything, "", mock.Anything).Return(currentEvaluations(), nil)
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	report, err := service.GetReport(context.Background(), ReportQuery{Window: testCurrent, UseCache: true})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalEvaluations)
}

func TestGetReport_WithMemoryCache(t *testing.T) {
	cache := repositories.NewMemoryReportCache(time.Minute)
	defer cache.Close()
	service, repo, _ := setupTestAnalyticsService(t, cache)

	repo.On("ListEvaluations", mock.Anything, "dealer-1", mock.Anything).Return(currentEvaluations(), nil)
	q := ReportQuery{ClientID: "dealer-1", Window: testCurrent, UseCache: true}

	first, err := service.GetReport(context.Background(), q)
	require.NoError(t, err)
	second, err := service.GetReport(context.Background(), q)
	require.NoError(t, err)

	assert.False(t, first.FromCache)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.ID, second.ID)
	repo.AssertNumberOfCalls(t, "ListEvaluations", 2)
}

// ============================================================================
// Trends, patterns and cache invalidation
// ============================================================================

func TestGetTrends(t *testing.T) {
	service, repo, _ := setupTestAnalyticsService(t, nil)

	repo.On("ListEvaluations", mock.Anything, "dealer-1", testCurrent).Return(currentEvaluations(), nil)
	repo.On("ListEvaluations", mock.Anything, "dealer-1", testPrevious).Return(previousEvaluations(), nil)

	result, err := service.GetTrends(context.Background(), ReportQuery{ClientID: "dealer-1", Window: testCurrent})
	require.NoError(t, err)

	assert.Equal(t, testCurrent, result.Current)
	assert.Equal(t, testPrevious, result.Previous)

	trends := make(map[string]models.KeywordTrend)
	for _, tr := range result.Trends {
		trends[tr.Keyword] = tr
	}
	assert.Equal(t, models.TrendIncreasing, trends["hallucinated"].Trend)
	assert.Equal(t, models.TrendDecreasing, trends["garbled"].Trend)
}

func TestGetPatterns(t *testing.T) {
	service, repo, _ := setupTestAnalyticsService(t, nil)

	repo.On("ListEvaluations", mock.Anything, "", mock.Anything).Return(currentEvaluations(), nil)

	result, err := service.GetPatterns(context.Background(), ReportQuery{Window: testCurrent, MinOccurrences: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FailedEvaluations)
	require.NotEmpty(t, result.Patterns)
	for _, p := range result.Patterns {
		assert.GreaterOrEqual(t, p.Frequency, 2)
		assert.Equal(t, models.CategoryHallucination, p.Category)
	}
}

func TestInvalidateCache(t *testing.T) {
	cache := new(MockReportCache)
	service, _, _ := setupTestAnalyticsService(t, cache)

	cache.On("Invalidate", mock.Anything, "dealer-1").Return(3, nil).Once()
	cache.On("Invalidate", mock.Anything, "").Return(0, errors.New("redis down")).Once()

	removed, err := service.InvalidateCache(context.Background(), "dealer-1")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	_, err = service.InvalidateCache(context.Background(), "")
	assert.Error(t, err)

	noCache, _, _ := setupTestAnalyticsService(t, nil)
	removed, err = noCache.InvalidateCache(context.Background(), "dealer-1")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestListClients(t *testing.T) {
	service, repo, _ := setupTestAnalyticsService(t, nil)

	repo.On("ListClientIDs", mock.Anything, testCurrent).Return([]string{"dealer-1", "dealer-2"}, nil).Once()
	repo.On("ListClientIDs", mock.Anything, testPrevious).Return(nil, errors.New("timeout")).Once()

	ids, err := service.ListClients(context.Background(), testCurrent)
	require.NoError(t, err)
	assert.Equal(t, []string{"dealer-1", "dealer-2"}, ids)

	_, err = service.ListClients(context.Background(), testPrevious)
	assert.Error(t, err)
}

func metricsCounter(t *testing.T, m *metrics.Metrics, kind, outcome string) prometheus.Counter {
	t.Helper()
	return m.ReportCounter(kind, outcome)
}
