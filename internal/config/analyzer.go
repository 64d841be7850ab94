package config

import (
	"fmt"
	"os"

	"call-insights/internal/analysis"
	"call-insights/internal/models"

	"gopkg.in/yaml.v3"
)

// AnalyzerConfig is the YAML tuning file for keyword, category and report settings.
//
//	stop_words: [dealership, customer]
//	category_keywords:
//	  protocol: [skipped greeting]
//	severity_keywords:
//	  critical: [lawsuit]
//	report:
//	  top_keywords: 15
type AnalyzerConfig struct {
	StopWords        []string            `yaml:"stop_words"`
	CategoryKeywords map[string][]string `yaml:"category_keywords"`
	SeverityKeywords map[string][]string `yaml:"severity_keywords"`
	MaxPhraseLength  int                 `yaml:"max_phrase_length"`
	Report           ReportConfig        `yaml:"report"`
}

// ReportConfig sets the default section sizes of generated reports
type ReportConfig struct {
	TopKeywords       int `yaml:"top_keywords"`
	KeywordsPerRecord int `yaml:"keywords_per_record"`
	MinOccurrences    int `yaml:"min_occurrences"`
	MaxPatterns       int `yaml:"max_patterns"`
	MaxTrends         int `yaml:"max_trends"`
}

// LoadAnalyzerConfig reads the tuning file at path.
// An empty path returns an empty config; a missing file is an error.
func LoadAnalyzerConfig(path string) (*AnalyzerConfig, error) {
	if path == "" {
		return &AnalyzerConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyzer config: %w", err)
	}
	return ParseAnalyzerConfig(data)
}

// ParseAnalyzerConfig decodes and validates a YAML tuning document
func ParseAnalyzerConfig(data []byte) (*AnalyzerConfig, error) {
	var cfg AnalyzerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse analyzer config: %w", err)
	}

	for name := range cfg.CategoryKeywords {
		if models.ParseFailureCategory(name) == models.CategoryOther {
			return nil, fmt.Errorf("unknown failure category %q in analyzer config", name)
		}
	}
	for name := range cfg.SeverityKeywords {
		if _, ok := models.ParseSeverity(name); !ok {
			return nil, fmt.Errorf("unknown severity %q in analyzer config", name)
		}
	}
	if cfg.MaxPhraseLength < 0 {
		return nil, fmt.Errorf("max_phrase_length must not be negative")
	}

	return &cfg, nil
}

// AnalyzerOptions converts the file into analyzer options
func (c *AnalyzerConfig) AnalyzerOptions() analysis.Options {
	opts := analysis.Options{
		ExtraStopWords:  c.StopWords,
		MaxPhraseLength: c.MaxPhraseLength,
	}
	if len(c.CategoryKeywords) > 0 {
		opts.CategoryKeywords = make(map[models.FailureCategory][]string, len(c.CategoryKeywords))
		for name, words := range c.CategoryKeywords {
			cat := models.ParseFailureCategory(name)
			opts.CategoryKeywords[cat] = append(opts.CategoryKeywords[cat], words...)
		}
	}
	if len(c.SeverityKeywords) > 0 {
		opts.SeverityKeywords = make(map[models.Severity][]string, len(c.SeverityKeywords))
		for name, words := range c.SeverityKeywords {
			sev, _ := models.ParseSeverity(name)
			opts.SeverityKeywords[sev] = append(opts.SeverityKeywords[sev], words...)
		}
	}
	return opts
}

// ReportOptions returns the report limits, with unset values taken from the defaults
func (c *AnalyzerConfig) ReportOptions() analysis.ReportOptions {
	def := analysis.DefaultReportOptions()
	pick := func(v, fallback int) int {
		if v > 0 {
			return v
		}
		return fallback
	}
	return analysis.ReportOptions{
		TopKeywords:       pick(c.Report.TopKeywords, def.TopKeywords),
		KeywordsPerRecord: pick(c.Report.KeywordsPerRecord, def.KeywordsPerRecord),
		MinOccurrences:    pick(c.Report.MinOccurrences, def.MinOccurrences),
		MaxPatterns:       pick(c.Report.MaxPatterns, def.MaxPatterns),
		MaxTrends:         pick(c.Report.MaxTrends, def.MaxTrends),
	}
}
