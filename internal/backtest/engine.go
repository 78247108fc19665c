// Package backtest replays historical races through the scoring pipeline and
// measures how each mark would have paid.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/racemarks/internal/metrics"
	"github.com/yourusername/racemarks/internal/models"
	"github.com/yourusername/racemarks/internal/repository"
	"github.com/yourusername/racemarks/internal/service"
	"github.com/yourusername/racemarks/internal/stats"
)

// Scorer ranks a stored race card
type Scorer interface {
	ScoreRace(ctx context.Context, raceID uuid.UUID) (*service.RaceScore, error)
}

// SnapshotBuilder builds aggregate tables from runs before a date
type SnapshotBuilder interface {
	BuildAsOf(ctx context.Context, asOf time.Time) (*stats.Snapshot, error)
}

// Engine orchestrates backtesting runs
type Engine struct {
	config    BacktestConfig
	races     repository.RaceRepository
	outcomes  repository.OutcomeRepository
	scorer    Scorer
	snapshots SnapshotBuilder
	store     *stats.Store
	logger    *logrus.Logger
}

// NewEngine creates a new backtesting engine. store must be the store the
// scorer reads from.
func NewEngine(
	cfg BacktestConfig,
	races repository.RaceRepository,
	outcomes repository.OutcomeRepository,
	scorer Scorer,
	snapshots SnapshotBuilder,
	store *stats.Store,
	logger *logrus.Logger,
) (*Engine, error) {
	if races == nil || outcomes == nil {
		return nil, fmt.Errorf("race and outcome repositories are required")
	}
	if scorer == nil {
		return nil, fmt.Errorf("scorer is required")
	}
	if snapshots == nil || store == nil {
		return nil, fmt.Errorf("snapshot builder and store are required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Engine{
		config:    cfg,
		races:     races,
		outcomes:  outcomes,
		scorer:    scorer,
		snapshots: snapshots,
		store:     store,
		logger:    logger,
	}, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// Run replays every race in the configured window. Aggregate tables are built
// once from runs before the start date so no race sees its own result.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	started := time.Now()
	e.logger.WithFields(logrus.Fields{
		"start": e.config.StartDate.Format(dateLayout),
		"end":   e.config.EndDate.Format(dateLayout),
	}).Info("Starting backtest run")

	snapshot, err := e.snapshots.BuildAsOf(ctx, e.config.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats snapshot: %w", err)
	}
	e.store.Swap(snapshot)

	ids, err := e.races.GetByDateRange(ctx, e.config.StartDate, e.config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load races: %w", err)
	}

	state := NewBacktestState(e.config.Stake)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.processRace(ctx, id, state); err != nil {
			return nil, err
		}
	}

	report := CalculateMetrics(state, e.config)
	report.Duration = time.Since(started)
	metrics.RecordBacktestDuration(report.Duration.Seconds())

	e.logger.WithFields(logrus.Fields{
		"races_scored":  report.RacesScored,
		"races_skipped": report.RacesSkipped,
		"duration":      report.Duration.String(),
	}).Info("Backtest run complete")

	return report, nil
}

func (e *Engine) processRace(ctx context.Context, raceID uuid.UUID, state *BacktestState) error {
	score, err := e.scorer.ScoreRace(ctx, raceID)
	if err != nil {
		if skippable(err) {
			e.logger.WithField("race_id", raceID).WithError(err).Warn("Skipping race that could not be scored")
			state.Skip()
			return nil
		}
		return fmt.Errorf("failed to score race %s: %w", raceID, err)
	}

	outcome, err := e.outcomes.GetOutcome(ctx, raceID)
	if errors.Is(err, models.ErrNotFound) {
		e.logger.WithField("race_id", raceID).Debug("Skipping unsettled race")
		state.Skip()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load outcome for race %s: %w", raceID, err)
	}

	state.RecordRace(score.Ranked, outcome)
	return nil
}

func skippable(err error) bool {
	return errors.Is(err, models.ErrInvalidRace) ||
		errors.Is(err, models.ErrNoEntrants) ||
		errors.Is(err, models.ErrNotFound)
}
