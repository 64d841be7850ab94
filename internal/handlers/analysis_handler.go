package handlers

import (
	"log"
	"net/http"

	"call-insights/internal/analysis"
	"call-insights/internal/models"
)

// AnalysisHandler exposes the text-mining primitives over ad-hoc input
type AnalysisHandler struct {
	responder
	analyzer *analysis.Analyzer
}

// NewAnalysisHandler creates an analysis handler; a nil analyzer selects analysis.Default
func NewAnalysisHandler(analyzer *analysis.Analyzer, logger *log.Logger) *AnalysisHandler {
	if analyzer == nil {
		analyzer = analysis.Default
	}
	return &AnalysisHandler{
		responder: responder{logger: logger},
		analyzer:  analyzer,
	}
}

// ExtractKeywords godoc
// @Summary Extract keywords
// @Description Ranks the significant words of a failure description
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.KeywordsRequest true "Text to analyze"
// @Success 200 {object} models.KeywordsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/analysis/keywords [post]
func (h *AnalysisHandler) ExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req models.KeywordsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	maxKeywords := req.MaxKeywords
	if maxKeywords == 0 {
		maxKeywords = analysis.DefaultMaxKeywords
	}

	h.sendJSON(w, http.StatusOK, models.KeywordsResponse{
		Keywords: nonNil(h.analyzer.ExtractKeywords(req.Text, maxKeywords)),
	})
}

// Categorize godoc
// @Summary Categorize failure
// @Description Assigns a failure description to one failure category
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.CategorizeRequest true "Text to categorize"
// @Success 200 {object} models.CategorizeResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/analysis/categorize [post]
func (h *AnalysisHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req models.CategorizeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	h.sendJSON(w, http.StatusOK, models.CategorizeResponse{
		Category: h.analyzer.CategorizeFailure(req.Text),
	})
}

// Normalize godoc
// @Summary Normalize failure payload
// @Description Flattens any JSON failure payload into a list of failure fragments
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.NormalizeRequest true "Payload to normalize"
// @Success 200 {object} models.NormalizeResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/analysis/normalize [post]
func (h *AnalysisHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req models.NormalizeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	input := analysis.Null()
	if len(req.Input) > 0 {
		input = analysis.FromJSON(req.Input)
	}

	h.sendJSON(w, http.StatusOK, models.NormalizeResponse{
		Fragments: nonNil(analysis.ParseJSONB(input)),
	})
}

// DetectPatterns godoc
// @Summary Detect failure patterns
// @Description Finds phrases recurring across the given failure texts
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.PatternsRequest true "Texts to analyze"
// @Success 200 {object} models.PatternsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/analysis/patterns [post]
func (h *AnalysisHandler) DetectPatterns(w http.ResponseWriter, r *http.Request) {
	var req models.PatternsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	minOccurrences := req.MinOccurrences
	if minOccurrences <= 0 {
		minOccurrences = analysis.DefaultMinOccurrences
	}

	patterns := h.analyzer.DetectFailurePatterns(req.Texts, minOccurrences)
	if patterns == nil {
		patterns = []models.FailurePattern{}
	}
	h.sendJSON(w, http.StatusOK, models.PatternsResponse{Patterns: patterns})
}

// AnalyzeTrends godoc
// @Summary Analyze keyword trends
// @Description Compares keyword frequencies between historical and current buckets
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.TrendsRequest true "Keyword buckets"
// @Success 200 {object} models.TrendsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/analysis/trends [post]
func (h *AnalysisHandler) AnalyzeTrends(w http.ResponseWriter, r *http.Request) {
	var req models.TrendsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	trends := analysis.AnalyzeTrends(req.Historical, req.Current)
	if trends == nil {
		trends = []models.KeywordTrend{}
	}
	h.sendJSON(w, http.StatusOK, models.TrendsResponse{Trends: trends})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
