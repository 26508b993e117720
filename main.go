package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/runsync/runsync/internal/config"
	"github.com/runsync/runsync/internal/db"
	"github.com/runsync/runsync/internal/garmin"
	"github.com/runsync/runsync/internal/steps"
	syncpipe "github.com/runsync/runsync/internal/sync"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

var rootCmd = &cobra.Command{
	Use:   "runsync",
	Short: "runsync syncs Garmin Connect running data to Postgres and charts daily steps",
	Long: `runsync is a CLI application that:
1. Authenticates with Garmin Connect
2. Syncs running activities into a Postgres runs table (sync)
3. Renders the last 30 days of step counts as an area chart (steps)`,
	SilenceUsage: true,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync running activities to the database",
	Long: `Fetches recent activities from Garmin Connect, keeps the running
ones, and upserts each into the runs table keyed by activity ID. A failure on
an individual row is logged and counted without aborting the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := cmd.Context()
		pool, err := db.Connect(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		store := db.NewStore(pool)
		if err := store.InitSchema(ctx); err != nil {
			return err
		}

		client := garmin.NewClient(cfg.GarminEmail, cfg.GarminPassword, cfg.SessionPath)
		summary, err := syncpipe.New(client, store, log).Run(ctx, cfg.FetchLimit)
		if err != nil {
			return err
		}

		fmt.Printf("Sync summary: %d/%d runs synced, %d failed\n",
			summary.Synced, summary.Fetched, summary.Failed)
		return nil
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Render a 30-day step count chart",
	Long: `Fetches daily step counts for the trailing 30 calendar days from
Garmin Connect, computes mean/max/min, and renders an area chart to an SVG
file in the working directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client := garmin.NewClient(cfg.GarminEmail, cfg.GarminPassword, cfg.SessionPath)
		stats, err := steps.New(client, log).Run(cmd.Context(), cfg.StepWindowDays, cfg.ChartPath)
		if err != nil {
			return err
		}

		fmt.Printf("Chart saved to %s (avg %.0f, max %d, min %d steps over %d days)\n",
			cfg.ChartPath, stats.Mean, stats.Max, stats.Min, stats.Days)
		return nil
	},
}

func main() {
	Execute()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(stepsCmd)
}
