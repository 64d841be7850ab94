package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"call-insights/internal/analysis"
	"call-insights/internal/config"
	"call-insights/internal/repositories"
	"call-insights/internal/services"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "failure-report",
	Short: "Failure analytics for automated call evaluations",
	Long: `failure-report mines the failure reasons recorded for automated call evaluations.
It reports top failure keywords, failure categories, recurring phrases and keyword trends,
either from the call_evaluations table or from a JSON export.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.failure-report.yaml)")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection string (or set DATABASE_URL)")
	rootCmd.PersistentFlags().String("analyzer-config", "", "Analyzer tuning YAML (or set ANALYZER_CONFIG_FILE)")
	rootCmd.PersistentFlags().Bool("debug", false, "log analytics progress to stderr")

	viper.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag("analyzer_config_file", rootCmd.PersistentFlags().Lookup("analyzer-config"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".failure-report")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("debug") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newService builds an uncached analytics service over evaluations
func newService(evaluations repositories.EvaluationRepository) (*services.AnalyticsService, error) {
	analyzerConfig, err := config.LoadAnalyzerConfig(viper.GetString("analyzer_config_file"))
	if err != nil {
		return nil, err
	}

	out := io.Discard
	if viper.GetBool("debug") {
		out = os.Stderr
	}
	logger := log.New(out, "[ANALYTICS] ", log.LstdFlags)

	return services.NewAnalyticsService(
		evaluations,
		nil,
		analysis.NewAnalyzer(analyzerConfig.AnalyzerOptions()),
		analyzerConfig.ReportOptions(),
		nil,
		logger,
	), nil
}

func requireDatabaseURL() (string, error) {
	url := viper.GetString("database_url")
	if url == "" {
		return "", fmt.Errorf("database URL is required (--database-url or DATABASE_URL)")
	}
	return url, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
