package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"call-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow(t *testing.T) {
	records := []models.EvaluationRecord{
		{EvaluatedAt: time.Date(2026, 9, 3, 16, 40, 0, 0, time.UTC)},
		{EvaluatedAt: time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)},
		{EvaluatedAt: time.Date(2026, 9, 4, 10, 30, 0, 0, time.UTC)},
	}

	t.Run("spans records by whole days", func(t *testing.T) {
		window, err := resolveWindow("", "", records)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), window.Start)
		assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), window.End)
	})

	t.Run("explicit bounds", func(t *testing.T) {
		window, err := resolveWindow("2026-09-01", "2026-09-07", records)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), window.End)
	})

	t.Run("one bound only", func(t *testing.T) {
		_, err := resolveWindow("2026-09-01", "", records)
		assert.ErrorIs(t, err, models.ErrInvalidRange)
	})

	t.Run("empty export", func(t *testing.T) {
		_, err := resolveWindow("", "", nil)
		assert.ErrorIs(t, err, models.ErrInvalidRange)
	})
}

func TestAnalyzeCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"analyze",
		"--file", filepath.Join("..", "..", "config", "evaluations.sample.json"),
		"--client", "dealer-1",
	})

	require.NoError(t, Execute())

	var report models.AnalysisReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "dealer-1", report.ClientID)
	assert.Equal(t, 3, report.TotalEvaluations)
	assert.Equal(t, 2, report.FailedEvaluations)
	assert.NotEmpty(t, report.TopFailureKeywords)
	assert.NotEmpty(t, report.ID)
}
