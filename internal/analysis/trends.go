package analysis

import (
	"math"
	"sort"
	"strings"

	"call-insights/internal/models"
)

// trendThreshold is the absolute change rate (percent) below which a keyword is stable
const trendThreshold = 20.0

// AnalyzeTrends compares keyword frequencies between a historical and a current window.
// Without occurrences on both sides there is no baseline, and the result is empty.
// Results are sorted by descending absolute change rate.
func AnalyzeTrends(historical, current []models.KeywordBucket) []models.KeywordTrend {
	trends := []models.KeywordTrend{}

	before := flattenBuckets(historical)
	after := flattenBuckets(current)
	if len(before) == 0 || len(after) == 0 {
		return trends
	}

	seen := make(map[string]bool, len(before)+len(after))
	for _, counts := range []map[string]int{before, after} {
		for keyword := range counts {
			if seen[keyword] {
				continue
			}
			seen[keyword] = true

			rate := changeRate(before[keyword], after[keyword])
			trends = append(trends, models.KeywordTrend{
				Keyword:         keyword,
				HistoricalCount: before[keyword],
				CurrentCount:    after[keyword],
				ChangeRate:      rate,
				Trend:           classifyTrend(rate),
			})
		}
	}

	sort.Slice(trends, func(i, j int) bool {
		ai, aj := math.Abs(trends[i].ChangeRate), math.Abs(trends[j].ChangeRate)
		if ai != aj {
			return ai > aj
		}
		return trends[i].Keyword < trends[j].Keyword
	})
	return trends
}

func flattenBuckets(buckets []models.KeywordBucket) map[string]int {
	counts := make(map[string]int)
	for _, b := range buckets {
		for _, kw := range b.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				counts[kw]++
			}
		}
	}
	return counts
}

func changeRate(historical, current int) float64 {
	switch {
	case historical == 0 && current > 0:
		return 100
	case historical > 0 && current == 0:
		return -100
	case historical == 0:
		return 0
	default:
		return float64(current-historical) * 100 / float64(historical)
	}
}

func classifyTrend(rate float64) models.TrendDirection {
	switch {
	case rate > trendThreshold:
		return models.TrendIncreasing
	case rate < -trendThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}
