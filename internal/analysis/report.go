package analysis

import (
	"sort"
	"strings"
	"time"

	"call-insights/internal/models"
)

// ReportOptions controls the size of each report section
type ReportOptions struct {
	TopKeywords       int
	KeywordsPerRecord int
	MinOccurrences    int
	MaxPatterns       int
	MaxTrends         int
}

// DefaultReportOptions returns the limits used by the dashboard
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		TopKeywords:       DefaultMaxKeywords,
		KeywordsPerRecord: DefaultMaxKeywords,
		MinOccurrences:    DefaultMinOccurrences,
		MaxPatterns:       20,
		MaxTrends:         20,
	}
}

// WithDefaults fills every non-positive limit from DefaultReportOptions
func (o ReportOptions) WithDefaults() ReportOptions {
	def := DefaultReportOptions()
	if o.TopKeywords <= 0 {
		o.TopKeywords = def.TopKeywords
	}
	if o.KeywordsPerRecord <= 0 {
		o.KeywordsPerRecord = def.KeywordsPerRecord
	}
	if o.MinOccurrences <= 0 {
		o.MinOccurrences = def.MinOccurrences
	}
	if o.MaxPatterns <= 0 {
		o.MaxPatterns = def.MaxPatterns
	}
	if o.MaxTrends <= 0 {
		o.MaxTrends = def.MaxTrends
	}
	return o
}

// FailureFragments normalizes every failure field of a record into text fragments
func FailureFragments(record models.EvaluationRecord) []string {
	fragments := ParseJSONB(FromJSON(record.FailureReasons))
	return append(fragments, ParseJSONB(Text(record.Notes))...)
}

// BuildReport aggregates the current window's evaluations into a dashboard report.
// The previous window is only used as the baseline for trending issues.
func (a *Analyzer) BuildReport(current, previous []models.EvaluationRecord, opts ReportOptions) models.AnalysisReport {
	opts = opts.WithDefaults()

	report := models.AnalysisReport{
		TotalEvaluations:   len(current),
		TopFailureKeywords: []string{},
		FailureCategories:  []models.CategoryCount{},
		Patterns:           []models.FailurePattern{},
		TrendingIssues:     []models.KeywordTrend{},
	}

	var fragments []string
	categoryCounts := make(map[models.FailureCategory]int)
	for _, record := range current {
		recordFragments := FailureFragments(record)
		if len(recordFragments) == 0 {
			continue
		}
		report.FailedEvaluations++
		for _, f := range recordFragments {
			categoryCounts[a.CategorizeFailure(f)]++
		}
		fragments = append(fragments, recordFragments...)
	}

	report.TopFailureKeywords = a.ExtractKeywords(strings.Join(fragments, "\n"), opts.TopKeywords)
	report.FailureCategories = sortCategoryCounts(categoryCounts)

	patterns := a.DetectFailurePatterns(fragments, opts.MinOccurrences)
	if len(patterns) > opts.MaxPatterns {
		patterns = patterns[:opts.MaxPatterns]
	}
	report.Patterns = patterns

	trends := AnalyzeTrends(a.KeywordBuckets(previous, opts.KeywordsPerRecord), a.KeywordBuckets(current, opts.KeywordsPerRecord))
	if len(trends) > opts.MaxTrends {
		trends = trends[:opts.MaxTrends]
	}
	report.TrendingIssues = trends

	return report
}

// KeywordBuckets groups the top keywords of each record by UTC day, oldest first
func (a *Analyzer) KeywordBuckets(records []models.EvaluationRecord, keywordsPerRecord int) []models.KeywordBucket {
	byDay := make(map[time.Time]*models.KeywordBucket)
	for _, record := range records {
		text := strings.Join(FailureFragments(record), "\n")
		keywords := a.ExtractKeywords(text, keywordsPerRecord)
		if len(keywords) == 0 {
			continue
		}

		day := record.EvaluatedAt.UTC().Truncate(24 * time.Hour)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &models.KeywordBucket{Date: day}
			byDay[day] = bucket
		}
		bucket.Keywords = append(bucket.Keywords, keywords...)
	}

	buckets := make([]models.KeywordBucket, 0, len(byDay))
	for _, b := range byDay {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})
	return buckets
}

func sortCategoryCounts(counts map[models.FailureCategory]int) []models.CategoryCount {
	result := []models.CategoryCount{}
	for _, cat := range models.CategoryPriority {
		if n := counts[cat]; n > 0 {
			result = append(result, models.CategoryCount{Category: cat, Count: n})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// BuildReport aggregates evaluations using the default analyzer
func BuildReport(current, previous []models.EvaluationRecord, opts ReportOptions) models.AnalysisReport {
	return Default.BuildReport(current, previous, opts)
}
