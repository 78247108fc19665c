package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/racemarks/internal/database"
	"github.com/yourusername/racemarks/internal/models"
)

// PostgresHistoryRepository implements HistoryRepository for PostgreSQL
type PostgresHistoryRepository struct {
	db *database.DB
}

// NewPostgresHistoryRepository creates a new history repository
func NewPostgresHistoryRepository(db *database.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// GetRecent retrieves past results strictly before asOf. A run on the race
// date itself is the race being scored, so the filter must stay exclusive.
func (r *PostgresHistoryRepository) GetRecent(ctx context.Context, horseID uuid.UUID, asOf time.Time, limit int) ([]models.PastResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT finish, to_char(race_date, 'YYYY-MM-DD'), distance, surface, condition,
		       last_3f, passage, body_weight, weight_change
		FROM results
		WHERE horse_id = $1 AND race_date < $2
		ORDER BY race_date DESC
		LIMIT $3
	`

	rows, err := r.db.GetPool().Query(ctx, query, horseID, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	history := make([]models.PastResult, 0, limit)
	for rows.Next() {
		var p models.PastResult
		err := rows.Scan(
			&p.Finish, &p.Date, &p.Distance, &p.Surface, &p.Condition,
			&p.Last3F, &p.Passage, &p.BodyWeight, &p.WeightChange,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan past result: %w", err)
		}
		history = append(history, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return history, nil
}
