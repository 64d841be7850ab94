package models

import (
	"strings"
	"time"
)

// FailureCategory classifies why an automated call-handling agent underperformed
type FailureCategory string

const (
	CategoryHallucination FailureCategory = "hallucination"
	CategoryTranscriber   FailureCategory = "transcriber"
	CategoryRules         FailureCategory = "rules"
	CategoryProtocol      FailureCategory = "protocol"
	CategoryOther         FailureCategory = "other"
)

// CategoryPriority lists categories in the order they are checked.
// The first category whose keywords match a text wins.
var CategoryPriority = []FailureCategory{
	CategoryHallucination,
	CategoryTranscriber,
	CategoryRules,
	CategoryProtocol,
	CategoryOther,
}

// Rank returns the position of the category in CategoryPriority (lower is checked first)
func (c FailureCategory) Rank() int {
	for i, cat := range CategoryPriority {
		if cat == c {
			return i
		}
	}
	return len(CategoryPriority)
}

// ParseFailureCategory converts a string to a FailureCategory, defaulting to other
func ParseFailureCategory(s string) FailureCategory {
	switch FailureCategory(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryHallucination:
		return CategoryHallucination
	case CategoryTranscriber:
		return CategoryTranscriber
	case CategoryRules:
		return CategoryRules
	case CategoryProtocol:
		return CategoryProtocol
	default:
		return CategoryOther
	}
}

// Severity is an ordered severity tier: Low < Medium < High < Critical
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON converts Severity to JSON string
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON converts JSON string to Severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	*s, _ = ParseSeverity(str) // unknown values fall back to low
	return nil
}

// ParseSeverity converts a tier name to a Severity. Unknown names yield SeverityLow and false.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return SeverityLow, true
	case "medium":
		return SeverityMedium, true
	case "high":
		return SeverityHigh, true
	case "critical":
		return SeverityCritical, true
	default:
		return SeverityLow, false
	}
}

// FailurePattern is a phrase that recurs across failure texts
type FailurePattern struct {
	Pattern   string          `json:"pattern"`
	Frequency int             `json:"frequency"` // Number of distinct texts containing the pattern
	Category  FailureCategory `json:"category"`
	Severity  Severity        `json:"severity"`
}

// TrendDirection describes how a keyword's frequency moved between two windows
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// KeywordTrend compares a keyword's frequency between a historical and a current window
type KeywordTrend struct {
	Keyword         string         `json:"keyword"`
	HistoricalCount int            `json:"historical_count"`
	CurrentCount    int            `json:"current_count"`
	ChangeRate      float64        `json:"change_rate"` // Percentage, -100..+inf
	Trend           TrendDirection `json:"trend"`
}

// KeywordBucket holds the keywords observed on one date
type KeywordBucket struct {
	Date     time.Time `json:"date"`
	Keywords []string  `json:"keywords"`
}

// CategoryCount is the number of failure fragments assigned to a category
type CategoryCount struct {
	Category FailureCategory `json:"category"`
	Count    int             `json:"count"`
}

// AnalysisReport is the aggregate consumed by the analytics dashboard
type AnalysisReport struct {
	ID                 string           `json:"id,omitempty"`
	ClientID           string           `json:"client_id,omitempty"`
	Start              time.Time        `json:"start"`
	End                time.Time        `json:"end"`
	GeneratedAt        time.Time        `json:"generated_at"`
	TotalEvaluations   int              `json:"total_evaluations"`
	FailedEvaluations  int              `json:"failed_evaluations"`
	TopFailureKeywords []string         `json:"top_failure_keywords"`
	FailureCategories  []CategoryCount  `json:"failure_categories"`
	Patterns           []FailurePattern `json:"patterns"`
	TrendingIssues     []KeywordTrend   `json:"trending_issues"`
	FromCache          bool             `json:"from_cache"`
}
