package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/racemarks/internal/backtest"
)

var (
	backtestStart  string
	backtestEnd    string
	backtestOutput string
)

func init() {
	backtestCmd.Flags().StringVar(&backtestStart, "start", "", "Override start date (YYYY-MM-DD)")
	backtestCmd.Flags().StringVar(&backtestEnd, "end", "", "Override end date (YYYY-MM-DD)")
	backtestCmd.Flags().StringVar(&backtestOutput, "output", "", "Write the report as JSON to this path")
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Score every settled race in a date range and report how each mark paid",
	RunE: func(cmd *cobra.Command, args []string) error {
		btConfig, err := backtest.FromConfig(&cfg.Backtest, backtestStart, backtestEnd)
		if err != nil {
			return fmt.Errorf("invalid backtest configuration: %w", err)
		}

		ctx := cmd.Context()
		if err := setupDependencies(ctx); err != nil {
			return err
		}

		engine, err := backtest.NewEngine(btConfig, repos.Race, repos.Outcome, scorer, refresher, store, appLog)
		if err != nil {
			return err
		}

		report, err := engine.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Print(backtest.GenerateConsoleReport(report))
		if backtestOutput != "" {
			if err := backtest.GenerateJSONExport(report, backtestOutput); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			appLog.WithField("path", backtestOutput).Info("Backtest report written")
		}
		return nil
	},
}
