package main

import (
	"call-insights/internal/db"
	"call-insights/internal/models"
	"call-insights/internal/repositories"
	"call-insights/internal/services"

	"github.com/spf13/cobra"
)

var (
	reportStart  string
	reportEnd    string
	reportClient string
	reportTop    int
	reportView   string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportStart, "start", "", "Window start, RFC 3339 or YYYY-MM-DD (required)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "Window end, RFC 3339 or inclusive YYYY-MM-DD (required)")
	reportCmd.Flags().StringVar(&reportClient, "client", "", "Restrict to one client")
	reportCmd.Flags().IntVar(&reportTop, "top", 0, "Number of top keywords (default 10)")
	reportCmd.Flags().StringVar(&reportView, "view", "report", "Output: report, trends, patterns")
	reportCmd.MarkFlagRequired("start")
	reportCmd.MarkFlagRequired("end")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze evaluations stored in Postgres",
	Long: `Analyze the call_evaluations table for a date range and print the result as JSON.

Examples:
  failure-report report --start 2026-09-01 --end 2026-09-07
  failure-report report --start 2026-09-01 --end 2026-09-07 --client dealer-1 --view trends`,
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := models.ParseDateRange(reportStart, reportEnd)
		if err != nil {
			return err
		}

		url, err := requireDatabaseURL()
		if err != nil {
			return err
		}

		ctx := commandContext(cmd)
		database, err := db.NewPostgres(ctx, url)
		if err != nil {
			return err
		}
		defer database.Close()

		service, err := newService(repositories.NewPostgresEvaluationRepository(database.Pool))
		if err != nil {
			return err
		}

		q := services.ReportQuery{ClientID: reportClient, Window: window, TopKeywords: reportTop}
		var result any
		switch reportView {
		case "trends":
			result, err = service.GetTrends(ctx, q)
		case "patterns":
			result, err = service.GetPatterns(ctx, q)
		default:
			result, err = service.GetReport(ctx, q)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}
