package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"call-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalysisHandler_ExtractKeywords(t *testing.T) {
	h := NewAnalysisHandler(nil, testLogger())

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "default limit",
			body: `{"text": "The agent and the customer were talking about the issue"}`,
			want: []string{"agent", "customer", "talking", "issue"},
		},
		{
			name: "explicit limit",
			body: `{"text": "alpha bravo charlie delta", "max_keywords": 2}`,
			want: []string{"alpha", "bravo"},
		},
		{
			name: "negative limit yields nothing",
			body: `{"text": "alpha bravo", "max_keywords": -1}`,
			want: []string{},
		},
		{
			name: "empty text",
			body: `{"text": ""}`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.ExtractKeywords, "/api/v1/analysis/keywords", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp models.KeywordsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Keywords)
		})
	}
}

func TestAnalysisHandler_Categorize(t *testing.T) {
	h := NewAnalysisHandler(nil, testLogger())

	tests := []struct {
		text string
		want models.FailureCategory
	}{
		{"Agent hallucinated a trade-in value", models.CategoryHallucination},
		{"Transcription dropped the caller's name", models.CategoryTranscriber},
		{"Violated the rule: never quote prices", models.CategoryRules},
		{"Did not follow the escalation procedure", models.CategoryProtocol},
		{"Caller hung up", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			body, _ := json.Marshal(models.CategorizeRequest{Text: tt.text})
			rec := postJSON(t, h.Categorize, "/api/v1/analysis/categorize", string(body))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp models.CategorizeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Category)
		})
	}
}

func TestAnalysisHandler_Normalize(t *testing.T) {
	h := NewAnalysisHandler(nil, testLogger())

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"list", `{"input": ["wrong price", "  ", "no greeting"]}`, []string{"wrong price", "no greeting"}},
		{"object keeps document order", `{"input": {"z": "first", "a": "second"}}`, []string{"first", "second"}},
		{"null", `{"input": null}`, []string{}},
		{"missing", `{}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Normalize, "/api/v1/analysis/normalize", tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp models.NormalizeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Fragments)
		})
	}
}

func TestAnalysisHandler_DetectPatterns(t *testing.T) {
	h := NewAnalysisHandler(nil, testLogger())

	body := `{"texts": [
		"Agent quoted the wrong price.",
		"The wrong price was given again.",
		"Caller asked for service hours."
	]}`
	rec := postJSON(t, h.DetectPatterns, "/api/v1/analysis/patterns", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.PatternsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Patterns)
	assert.Equal(t, "wrong price", resp.Patterns[0].Pattern)
	assert.Equal(t, 2, resp.Patterns[0].Frequency)

	rec = postJSON(t, h.DetectPatterns, "/api/v1/analysis/patterns", `{"texts": []}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"patterns": []}`, rec.Body.String())
}

func TestAnalysisHandler_AnalyzeTrends(t *testing.T) {
	h := NewAnalysisHandler(nil, testLogger())

	body := `{
		"historical": [{"date": "2026-09-01T00:00:00Z", "keywords": ["timeout", "greeting"]}],
		"current": [{"date": "2026-09-08T00:00:00Z", "keywords": ["timeout", "timeout", "greeting"]}]
	}`
	rec := postJSON(t, h.AnalyzeTrends, "/api/v1/analysis/trends", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TrendsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []models.KeywordTrend{
		{Keyword: "timeout", HistoricalCount: 1, CurrentCount: 2, ChangeRate: 100, Trend: models.TrendIncreasing},
		{Keyword: "greeting", HistoricalCount: 1, CurrentCount: 1, ChangeRate: 0, Trend: models.TrendStable},
	}, resp.Trends)

	rec = postJSON(t, h.AnalyzeTrends, "/api/v1/analysis/trends", `{"historical": [], "current": []}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"trends": []}`, rec.Body.String())
}

func TestAnalysisHandler_InvalidBody(t *testing.T) {
	h := NewAnalysisHandler(nil, testLogger())

	handlers := map[string]http.HandlerFunc{
		"keywords":   h.ExtractKeywords,
		"categorize": h.Categorize,
		"normalize":  h.Normalize,
		"patterns":   h.DetectPatterns,
		"trends":     h.AnalyzeTrends,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(t, handler, "/api/v1/analysis/"+name, `{"text": `)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Contains(t, resp.Message, "Invalid JSON body")
		})
	}
}

func TestAnalysisHandler_BodyTooLarge(t *testing.T) {
	h := NewAnalysisHandler(nil, testLogger())

	body := `{"text": "` + strings.Repeat("a", maxRequestBody) + `"}`
	rec := postJSON(t, h.ExtractKeywords, "/api/v1/analysis/keywords", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
