package analysis

import (
	"sort"
	"strings"

	"call-insights/internal/models"

	"github.com/jdkato/prose/v2"
)

const (
	// DefaultMinOccurrences is the minimum number of texts a pattern must appear in
	DefaultMinOccurrences = 2

	defaultMaxPhraseLength = 4
)

// defaultSeverityKeywords are matched against whole words of a pattern and its source texts
var defaultSeverityKeywords = map[models.Severity][]string{
	models.SeverityCritical: {"critical", "severe", "catastrophic"},
	models.SeverityHigh:     {"major", "serious", "significant"},
	models.SeverityMedium:   {"minor", "moderate"},
}

// phraseStats tracks the texts a candidate phrase was seen in
type phraseStats struct {
	phrase  string
	length  int
	sources []int
}

// DetectFailurePatterns returns phrases that occur in at least minOccurrences distinct texts.
// Phrases are sentence-bounded n-grams that start and end on a significant word. A phrase
// contained in a longer reported phrase with the same frequency is not reported separately.
func (a *Analyzer) DetectFailurePatterns(texts []string, minOccurrences int) []models.FailurePattern {
	patterns := []models.FailurePattern{}
	if minOccurrences < 1 {
		minOccurrences = 1
	}

	candidates := make(map[string]*phraseStats)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		for phrase, length := range a.phrasesIn(text) {
			stats, ok := candidates[phrase]
			if !ok {
				stats = &phraseStats{phrase: phrase, length: length}
				candidates[phrase] = stats
			}
			stats.sources = append(stats.sources, i)
		}
	}

	var retained []*phraseStats
	for _, stats := range candidates {
		if len(stats.sources) >= minOccurrences {
			retained = append(retained, stats)
		}
	}
	retained = maximalPhrases(retained)

	sort.Slice(retained, func(i, j int) bool {
		if len(retained[i].sources) != len(retained[j].sources) {
			return len(retained[i].sources) > len(retained[j].sources)
		}
		if retained[i].length != retained[j].length {
			return retained[i].length > retained[j].length
		}
		return retained[i].phrase < retained[j].phrase
	})

	for _, stats := range retained {
		patterns = append(patterns, models.FailurePattern{
			Pattern:   stats.phrase,
			Frequency: len(stats.sources),
			Category:  a.patternCategory(stats, texts),
			Severity:  a.patternSeverity(stats, texts),
		})
	}
	return patterns
}

// phrasesIn returns the distinct candidate phrases of one text with their word length
func (a *Analyzer) phrasesIn(text string) map[string]int {
	phrases := make(map[string]int)
	for _, sentence := range splitSentences(text) {
		tokens := words(sentence)
		for start := range tokens {
			if !a.isSignificant(tokens[start]) {
				continue
			}
			for n := 1; n <= a.maxPhraseLength && start+n <= len(tokens); n++ {
				if !a.isSignificant(tokens[start+n-1]) {
					continue
				}
				phrase := strings.Join(tokens[start:start+n], " ")
				phrases[phrase] = n
			}
		}
	}
	return phrases
}

// splitSentences segments text into sentences so phrases never span a sentence boundary
func splitSentences(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(true),
	)
	if err != nil {
		return []string{text}
	}

	sentences := doc.Sentences()
	if len(sentences) == 0 {
		return []string{text}
	}
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, s.Text)
	}
	return out
}

// maximalPhrases drops phrases that are covered by a longer phrase of equal frequency
func maximalPhrases(phrases []*phraseStats) []*phraseStats {
	kept := make([]*phraseStats, 0, len(phrases))
	for _, p := range phrases {
		covered := false
		needle := " " + p.phrase + " "
		for _, q := range phrases {
			if q.length <= p.length || len(q.sources) != len(p.sources) {
				continue
			}
			if strings.Contains(" "+q.phrase+" ", needle) {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, p)
		}
	}
	return kept
}

// patternCategory categorizes the phrase itself, falling back to the most common
// category among the texts it came from
func (a *Analyzer) patternCategory(stats *phraseStats, texts []string) models.FailureCategory {
	if cat := a.categorizer.Categorize(stats.phrase); cat != models.CategoryOther {
		return cat
	}

	counts := make(map[models.FailureCategory]int)
	for _, idx := range stats.sources {
		if cat := a.categorizer.Categorize(texts[idx]); cat != models.CategoryOther {
			counts[cat]++
		}
	}

	best := models.CategoryOther
	for _, cat := range models.CategoryPriority {
		if counts[cat] > counts[best] {
			best = cat
		}
	}
	return best
}

// patternSeverity returns the highest severity signalled by the phrase or its source texts
func (a *Analyzer) patternSeverity(stats *phraseStats, texts []string) models.Severity {
	severity := a.textSeverity(stats.phrase)
	for _, idx := range stats.sources {
		if severity == models.SeverityCritical {
			break
		}
		if s := a.textSeverity(texts[idx]); s > severity {
			severity = s
		}
	}
	return severity
}

// textSeverity maps severity words in text to a tier, defaulting to low
func (a *Analyzer) textSeverity(text string) models.Severity {
	severity := models.SeverityLow
	for _, w := range words(text) {
		if s, ok := a.severityWords[w]; ok && s > severity {
			severity = s
		}
	}
	return severity
}
