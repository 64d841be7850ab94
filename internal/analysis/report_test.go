package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"call-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluation(id string, day string, reasons string, notes string) models.EvaluationRecord {
	at, _ := time.Parse("2006-01-02", day)
	var raw json.RawMessage
	if reasons != "" {
		raw = json.RawMessage(reasons)
	}
	return models.EvaluationRecord{
		ID:             id,
		CallID:         "call-" + id,
		ClientID:       "dealer-1",
		EvaluatedAt:    at.Add(10 * time.Hour),
		FailureReasons: raw,
		Notes:          notes,
	}
}

func TestFailureFragments(t *testing.T) {
	record := evaluation("1", "2026-09-01", `["Hallucinated a discount", ""]`, "Rule: no pricing Rule: confirm name")

	assert.Equal(t, []string{
		"Hallucinated a discount",
		"Rule: no pricing",
		"Rule: confirm name",
	}, FailureFragments(record))
}

func TestBuildReport(t *testing.T) {
	previous := []models.EvaluationRecord{
		evaluation("p1", "2026-09-01", `["Transcription garbled the caller name"]`, ""),
		evaluation("p2", "2026-09-02", `["Transcription garbled the stock number"]`, ""),
	}
	current := []models.EvaluationRecord{
		evaluation("c1", "2026-09-08", `["Agent hallucinated a trade-in discount"]`, ""),
		evaluation("c2", "2026-09-08", `{"reason": "Agent hallucinated a trade-in discount", "score": 2}`, ""),
		evaluation("c3", "2026-09-09", `"Policy violation: quoted financing terms"`, ""),
		evaluation("c4", "2026-09-09", "", ""),
		evaluation("c5", "2026-09-10", `null`, "Transcription garbled the caller name"),
	}

	report := BuildReport(current, previous, ReportOptions{TopKeywords: 5, MinOccurrences: 2})

	assert.Equal(t, 5, report.TotalEvaluations)
	assert.Equal(t, 4, report.FailedEvaluations)

	assert.LessOrEqual(t, len(report.TopFailureKeywords), 5)
	assert.Equal(t, "agent", report.TopFailureKeywords[0])
	assert.Contains(t, report.TopFailureKeywords, "hallucinated")

	assert.Equal(t, []models.CategoryCount{
		{Category: models.CategoryHallucination, Count: 2},
		{Category: models.CategoryTranscriber, Count: 1},
		{Category: models.CategoryRules, Count: 1},
	}, report.FailureCategories)

	require.NotEmpty(t, report.Patterns)
	for _, p := range report.Patterns {
		assert.GreaterOrEqual(t, p.Frequency, 2)
	}
	assert.Equal(t, models.CategoryHallucination, report.Patterns[0].Category)

	require.NotEmpty(t, report.TrendingIssues)
	trends := make(map[string]models.KeywordTrend)
	for _, tr := range report.TrendingIssues {
		trends[tr.Keyword] = tr
	}
	assert.Equal(t, models.TrendIncreasing, trends["hallucinated"].Trend)
	assert.Equal(t, models.TrendDecreasing, trends["stock"].Trend)
	assert.Equal(t, models.TrendStable, trends["caller"].Trend)
}

func TestBuildReport_EmptyWindows(t *testing.T) {
	report := BuildReport(nil, nil, ReportOptions{})

	assert.Equal(t, 0, report.TotalEvaluations)
	assert.NotNil(t, report.TopFailureKeywords)
	assert.NotNil(t, report.FailureCategories)
	assert.NotNil(t, report.Patterns)
	assert.NotNil(t, report.TrendingIssues)
	assert.Empty(t, report.TrendingIssues)
}

func TestBuildReport_LimitsSections(t *testing.T) {
	var current []models.EvaluationRecord
	for i, text := range []string{
		"alpha bravo", "alpha bravo", "charlie delta", "charlie delta", "echo foxtrot", "echo foxtrot",
	} {
		current = append(current, evaluation(string(rune('a'+i)), "2026-09-01", "", text))
	}

	report := BuildReport(current, nil, ReportOptions{TopKeywords: 2, MaxPatterns: 2, MinOccurrences: 2})

	assert.Len(t, report.TopFailureKeywords, 2)
	assert.Len(t, report.Patterns, 2)
}

func TestKeywordBuckets(t *testing.T) {
	records := []models.EvaluationRecord{
		evaluation("2", "2026-09-02", `["misheard vin"]`, ""),
		evaluation("1", "2026-09-01", `["wrong price"]`, ""),
		evaluation("3", "2026-09-02", `["wrong price"]`, ""),
		evaluation("4", "2026-09-03", "", ""),
	}

	buckets := Default.KeywordBuckets(records, 10)

	require.Len(t, buckets, 2)
	assert.True(t, buckets[0].Date.Before(buckets[1].Date))
	assert.Equal(t, []string{"wrong", "price"}, buckets[0].Keywords)
	assert.ElementsMatch(t, []string{"misheard", "vin", "wrong", "price"}, buckets[1].Keywords)
}
