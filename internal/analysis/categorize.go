package analysis

import (
	"strings"

	"call-insights/internal/models"
)

// categoryRule maps a category to the substrings that identify it
type categoryRule struct {
	category models.FailureCategory
	keywords []string
}

// defaultCategoryKeywords are matched case-insensitively as substrings
var defaultCategoryKeywords = map[models.FailureCategory][]string{
	models.CategoryHallucination: {
		"hallucinat", "fabricat", "made up", "made-up", "false information",
		"invented", "inaccurate information", "not grounded",
	},
	models.CategoryTranscriber: {
		"transcri", "speech recognition", "speech-to-text", "audio quality",
		"misheard", "background noise",
	},
	models.CategoryRules: {
		"rule violation", "violated rule", "violated the rule", "rule:", "policy",
		"guideline", "compliance",
	},
	models.CategoryProtocol: {
		"prompt adherence", "instruction", "protocol", "did not follow", "failed to follow",
		"escalation procedure",
	},
}

// Categorizer assigns a failure category using a fixed priority order
type Categorizer struct {
	rules []categoryRule
}

// NewCategorizer builds a categorizer from the default keyword table plus extra keywords.
// Extra keywords never change the priority order of categories.
func NewCategorizer(extra map[models.FailureCategory][]string) *Categorizer {
	c := &Categorizer{}
	for _, cat := range models.CategoryPriority {
		if cat == models.CategoryOther {
			continue
		}
		keywords := append([]string(nil), defaultCategoryKeywords[cat]...)
		for _, kw := range extra[cat] {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		c.rules = append(c.rules, categoryRule{category: cat, keywords: keywords})
	}
	return c
}

// Categorize returns the first category whose keywords appear in text, or other
func (c *Categorizer) Categorize(text string) models.FailureCategory {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return models.CategoryOther
	}

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return models.CategoryOther
}

// Keywords returns the keywords checked for a category
func (c *Categorizer) Keywords(category models.FailureCategory) []string {
	for _, rule := range c.rules {
		if rule.category == category {
			return append([]string(nil), rule.keywords...)
		}
	}
	return nil
}
