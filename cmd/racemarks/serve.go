package main

import (
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/racemarks/internal/health"
	"github.com/yourusername/racemarks/internal/metrics"
	"github.com/yourusername/racemarks/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Refresh statistics on a schedule and serve health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := setupDependencies(ctx); err != nil {
			return err
		}

		healthCfg := health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
			Logger:      appLog,
			DB:          db,
			Snapshots:   store,
		}
		if cfg.Metrics.Enabled {
			healthCfg.Metrics = metrics.Handler()
			healthCfg.MetricsPath = cfg.Metrics.Path
		}
		server := health.NewServer(healthCfg)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}

		sched := scheduler.NewScheduler(refresher, appLog)
		if err := sched.ScheduleStatsRefresh(cfg.Stats.RefreshSchedule); err != nil {
			return err
		}

		// Serve with whatever the first build produced; the scheduler retries.
		sched.RunNow()
		if err := sched.Start(); err != nil {
			return err
		}
		server.SetReady(true)
		appLog.WithField("next_refresh", sched.GetNextRun()).Info("racemarks serving")

		<-ctx.Done()
		server.SetReady(false)
		appLog.Info("Shutting down")

		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Warn("Scheduler did not stop cleanly")
		}
		return shutdownServer(server)
	},
}

func shutdownServer(server *health.Server) error {
	if err := server.Shutdown(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to stop health server: %w", err)
	}
	return nil
}
