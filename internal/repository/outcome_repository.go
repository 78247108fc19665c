package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/racemarks/internal/database"
	"github.com/yourusername/racemarks/internal/models"
)

// PostgresOutcomeRepository implements OutcomeRepository for PostgreSQL
type PostgresOutcomeRepository struct {
	db *database.DB
}

// NewPostgresOutcomeRepository creates a new outcome repository
func NewPostgresOutcomeRepository(db *database.DB) OutcomeRepository {
	return &PostgresOutcomeRepository{db: db}
}

// GetOutcome retrieves finishing positions and payouts for a race
func (r *PostgresOutcomeRepository) GetOutcome(ctx context.Context, raceID uuid.UUID) (*models.RaceOutcome, error) {
	query := `
		SELECT entrant_id, position, win_payout, place_payout
		FROM payouts
		WHERE race_id = $1
		ORDER BY position
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payouts: %w", err)
	}
	defer rows.Close()

	outcome := &models.RaceOutcome{RaceID: raceID}
	for rows.Next() {
		var f models.EntrantFinish
		if err := rows.Scan(&f.EntrantID, &f.Position, &f.WinPayout, &f.PlacePayout); err != nil {
			return nil, fmt.Errorf("failed to scan payout: %w", err)
		}
		outcome.Finishes = append(outcome.Finishes, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payouts: %w", err)
	}

	if len(outcome.Finishes) == 0 {
		return nil, models.ErrNotFound
	}
	return outcome, nil
}
