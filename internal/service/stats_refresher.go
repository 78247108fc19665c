package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/racemarks/internal/logger"
	"github.com/yourusername/racemarks/internal/metrics"
	"github.com/yourusername/racemarks/internal/repository"
	"github.com/yourusername/racemarks/internal/stats"
)

// StatsRefresher rebuilds the aggregate tables from historical runs
type StatsRefresher struct {
	repo         repository.StatsRepository
	store        *stats.Store
	lookbackDays int
	minSamples   int
	now          func() time.Time
	logger       *logger.StatsLogger
}

// NewStatsRefresher creates a new refresher writing into store
func NewStatsRefresher(repo repository.StatsRepository, store *stats.Store, lookbackDays, minSamples int, log *logrus.Logger) *StatsRefresher {
	return &StatsRefresher{
		repo:         repo,
		store:        store,
		lookbackDays: lookbackDays,
		minSamples:   minSamples,
		now:          time.Now,
		logger:       logger.NewStatsLogger(log),
	}
}

// Refresh builds a snapshot from the lookback window ending now and swaps it
// into the store. On failure the previous snapshot stays active.
func (r *StatsRefresher) Refresh(ctx context.Context) (*stats.Snapshot, error) {
	start := time.Now()
	asOf := r.now()

	snapshot, since, err := r.build(ctx, asOf)
	if err != nil {
		metrics.RecordStatsRefresh(false, 0, 0)
		r.logger.LogRefreshFailure(err)
		return nil, err
	}

	previous := r.store.Swap(snapshot)
	metrics.RecordStatsRefresh(true, snapshot.Size(), float64(snapshot.BuiltAt().Unix()))
	r.logger.LogRefresh(snapshot.Runs(), snapshot.Size(), previous.Size(), since,
		float64(time.Since(start).Microseconds())/1000)

	return snapshot, nil
}

// BuildAsOf builds a snapshot from runs strictly before asOf without
// installing it.
func (r *StatsRefresher) BuildAsOf(ctx context.Context, asOf time.Time) (*stats.Snapshot, error) {
	snapshot, _, err := r.build(ctx, asOf)
	return snapshot, err
}

func (r *StatsRefresher) build(ctx context.Context, asOf time.Time) (*stats.Snapshot, time.Time, error) {
	since := asOf.AddDate(0, 0, -r.lookbackDays)

	runs, err := r.repo.ListRuns(ctx, since, asOf)
	if err != nil {
		return nil, since, fmt.Errorf("failed to list historical runs: %w", err)
	}

	builder := stats.NewBuilder(stats.WithMinSamples(r.minSamples), stats.WithClock(r.now))
	for _, run := range runs {
		builder.Add(run)
	}
	return builder.Build(), since, nil
}
