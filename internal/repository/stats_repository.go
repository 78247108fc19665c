package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/racemarks/internal/database"
	"github.com/yourusername/racemarks/internal/models"
	"github.com/yourusername/racemarks/internal/stats"
)

// PostgresStatsRepository implements StatsRepository for PostgreSQL
type PostgresStatsRepository struct {
	db *database.DB
}

// NewPostgresStatsRepository creates a new stats repository
func NewPostgresStatsRepository(db *database.DB) StatsRepository {
	return &PostgresStatsRepository{db: db}
}

// ListRuns retrieves historical runs in [since, until)
func (r *PostgresStatsRepository) ListRuns(ctx context.Context, since, until time.Time) ([]stats.Run, error) {
	query := `
		SELECT jockey, sire, track, surface, distance, gate, finish
		FROM results
		WHERE race_date >= $1 AND race_date < $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical runs: %w", err)
	}
	defer rows.Close()

	var runs []stats.Run
	for rows.Next() {
		var jockey, sire, track, surface, distance, gate, finish string
		if err := rows.Scan(&jockey, &sire, &track, &surface, &distance, &gate, &finish); err != nil {
			return nil, fmt.Errorf("failed to scan historical run: %w", err)
		}
		runs = append(runs, stats.Run{
			Jockey:   jockey,
			Sire:     sire,
			Track:    track,
			Surface:  models.ParseSurface(surface),
			Distance: firstInt(distance),
			Gate:     leadingInt(gate),
			Finish:   leadingInt(finish),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating historical runs: %w", err)
	}

	return runs, nil
}
