package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/racemarks/internal/models"
	"github.com/yourusername/racemarks/internal/stats"
)

// RaceRepository loads race cards
type RaceRepository interface {
	// GetCard returns the race and its entrants without history
	GetCard(ctx context.Context, raceID uuid.UUID) (*models.Race, error)
	// GetByDateRange returns race ids with start <= race_date <= end, oldest first
	GetByDateRange(ctx context.Context, start, end time.Time) ([]uuid.UUID, error)
}

// HistoryRepository looks up past results for a horse
type HistoryRepository interface {
	// GetRecent returns at most limit results strictly before asOf, newest first
	GetRecent(ctx context.Context, horseID uuid.UUID, asOf time.Time, limit int) ([]models.PastResult, error)
}

// StatsRepository reads the historical runs used to build aggregate tables
type StatsRepository interface {
	// ListRuns returns runs with since <= race_date < until
	ListRuns(ctx context.Context, since, until time.Time) ([]stats.Run, error)
}

// OutcomeRepository reads settled results and payouts
type OutcomeRepository interface {
	GetOutcome(ctx context.Context, raceID uuid.UUID) (*models.RaceOutcome, error)
}
