package main

import (
	"fmt"

	"call-insights/internal/db"

	"github.com/spf13/cobra"
)

var seedClient string

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedClient, "client", "dev-dealer", "Client ID for the seeded evaluations")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := requireDatabaseURL()
		if err != nil {
			return err
		}
		if err := db.RunMigrations(url); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample evaluations for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		n, err := database.SeedDevEvaluations(ctx, seedClient)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d evaluations for %s\n", n, seedClient)
		return nil
	},
}
