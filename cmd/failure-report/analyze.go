package main

import (
	"fmt"
	"time"

	exports "call-insights/config"
	"call-insights/internal/models"
	"call-insights/internal/repositories"
	"call-insights/internal/services"

	"github.com/spf13/cobra"
)

var (
	analyzeFile           string
	analyzeStart          string
	analyzeEnd            string
	analyzeClient         string
	analyzeTop            int
	analyzeMinOccurrences int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "JSON export of call evaluations (required)")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "Window start, RFC 3339 or YYYY-MM-DD (default: earliest evaluation)")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "Window end, RFC 3339 or inclusive YYYY-MM-DD (default: latest evaluation)")
	analyzeCmd.Flags().StringVar(&analyzeClient, "client", "", "Restrict to one client")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "Number of top keywords (default 10)")
	analyzeCmd.Flags().IntVar(&analyzeMinOccurrences, "min-occurrences", 0, "Minimum texts per pattern (default 2)")
	analyzeCmd.MarkFlagRequired("file")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze an offline evaluation export",
	Long: `Analyze a JSON array of call evaluations and print the report as JSON.

Examples:
  failure-report analyze --file export.json
  failure-report analyze --file export.json --client dealer-1 --top 5
  failure-report analyze --file export.json --start 2026-09-01 --end 2026-09-07`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := exports.LoadFromFile(analyzeFile)
		if err != nil {
			return err
		}

		window, err := resolveWindow(analyzeStart, analyzeEnd, records)
		if err != nil {
			return err
		}

		service, err := newService(repositories.NewMemoryEvaluationRepository(records))
		if err != nil {
			return err
		}

		report, err := service.GetReport(commandContext(cmd), services.ReportQuery{
			ClientID:       analyzeClient,
			Window:         window,
			TopKeywords:    analyzeTop,
			MinOccurrences: analyzeMinOccurrences,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

// resolveWindow parses explicit bounds, or spans every record by whole UTC days
func resolveWindow(start, end string, records []models.EvaluationRecord) (models.DateRange, error) {
	if start != "" || end != "" {
		return models.ParseDateRange(start, end)
	}
	if len(records) == 0 {
		return models.DateRange{}, fmt.Errorf("%w: export contains no evaluations", models.ErrInvalidRange)
	}

	first, last := records[0].EvaluatedAt, records[0].EvaluatedAt
	for _, rec := range records[1:] {
		if rec.EvaluatedAt.Before(first) {
			first = rec.EvaluatedAt
		}
		if rec.EvaluatedAt.After(last) {
			last = rec.EvaluatedAt
		}
	}

	return models.DateRange{
		Start: first.UTC().Truncate(24 * time.Hour),
		End:   last.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1),
	}, nil
}
