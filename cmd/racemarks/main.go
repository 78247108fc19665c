// Package main provides the racemarks command line tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/racemarks/internal/config"
	"github.com/yourusername/racemarks/internal/database"
	"github.com/yourusername/racemarks/internal/logger"
	"github.com/yourusername/racemarks/internal/metrics"
	"github.com/yourusername/racemarks/internal/repository"
	"github.com/yourusername/racemarks/internal/scoring"
	"github.com/yourusername/racemarks/internal/service"
	"github.com/yourusername/racemarks/internal/stats"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
	store      *stats.Store
	scorer     *service.ScoringService
	refresher  *service.StatsRefresher
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(scoreCmd, refreshStatsCmd, backtestCmd, serveCmd, migrateCmd)
}

var rootCmd = &cobra.Command{
	Use:     "racemarks",
	Short:   "Score horse races and assign recommendation marks",
	Long:    `Ranks race cards by estimated win probability and market divergence, assigns marks and confidence tiers, and backtests them against settled results.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		metrics.InitRegistry()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return err
		}
	}

	return config.Validate(cfg)
}

// setupDependencies connects to the database and builds the scoring stack
func setupDependencies(ctx context.Context) error {
	var err error
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db, cfg.History)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	scoringCfg, err := scoring.FromConfig(&cfg.Scoring)
	if err != nil {
		return fmt.Errorf("invalid scoring configuration: %w", err)
	}

	store = stats.NewStore()
	scorer = service.NewScoringService(repos.Race, repos.History, store, scoringCfg, cfg.History.Limit, appLog)
	refresher = service.NewStatsRefresher(repos.Stats, store, cfg.Stats.LookbackDays, cfg.Stats.MinSamples, appLog)

	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Debug("Dependencies initialized")
	return nil
}
