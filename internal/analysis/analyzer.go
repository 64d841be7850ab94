package analysis

import (
	"strings"

	"call-insights/internal/models"
)

// Options tunes an Analyzer. The zero value yields the default behaviour.
type Options struct {
	ExtraStopWords   []string
	CategoryKeywords map[models.FailureCategory][]string
	SeverityKeywords map[models.Severity][]string
	MaxPhraseLength  int
}

// Analyzer bundles the tunable tables used by keyword extraction, categorization and
// pattern detection. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	stopWords       map[string]bool
	categorizer     *Categorizer
	severityWords   map[string]models.Severity
	maxPhraseLength int
}

// Default is the analyzer used by the package-level functions
var Default = NewAnalyzer(Options{})

// NewAnalyzer creates an analyzer with the default tables extended by opts
func NewAnalyzer(opts Options) *Analyzer {
	a := &Analyzer{
		stopWords:       make(map[string]bool, len(defaultStopWords)+len(opts.ExtraStopWords)),
		categorizer:     NewCategorizer(opts.CategoryKeywords),
		severityWords:   make(map[string]models.Severity),
		maxPhraseLength: opts.MaxPhraseLength,
	}
	if a.maxPhraseLength <= 0 {
		a.maxPhraseLength = defaultMaxPhraseLength
	}

	for _, w := range defaultStopWords {
		a.stopWords[w] = true
	}
	for _, w := range opts.ExtraStopWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			a.stopWords[w] = true
		}
	}

	for sev, list := range defaultSeverityKeywords {
		for _, w := range list {
			a.severityWords[w] = sev
		}
	}
	for sev, list := range opts.SeverityKeywords {
		for _, w := range list {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				a.severityWords[w] = sev
			}
		}
	}

	return a
}

// CategorizeFailure classifies a failure description
func (a *Analyzer) CategorizeFailure(text string) models.FailureCategory {
	return a.categorizer.Categorize(text)
}

// ExtractKeywords ranks the significant words of text using the default analyzer
func ExtractKeywords(text string, maxKeywords int) []string {
	return Default.ExtractKeywords(text, maxKeywords)
}

// CategorizeFailure classifies text using the default analyzer
func CategorizeFailure(text string) models.FailureCategory {
	return Default.CategorizeFailure(text)
}

// DetectFailurePatterns finds recurring phrases using the default analyzer
func DetectFailurePatterns(texts []string, minOccurrences int) []models.FailurePattern {
	return Default.DetectFailurePatterns(texts, minOccurrences)
}
