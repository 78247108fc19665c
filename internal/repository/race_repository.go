package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/racemarks/internal/database"
	"github.com/yourusername/racemarks/internal/models"
)

// PostgresRaceRepository implements RaceRepository for PostgreSQL
type PostgresRaceRepository struct {
	db *database.DB
}

// NewPostgresRaceRepository creates a new race repository
func NewPostgresRaceRepository(db *database.DB) RaceRepository {
	return &PostgresRaceRepository{db: db}
}

// GetCard retrieves a race and its entrants
func (r *PostgresRaceRepository) GetCard(ctx context.Context, raceID uuid.UUID) (*models.Race, error) {
	query := `
		SELECT id, track, race_date, distance, surface, condition
		FROM races WHERE id = $1
	`

	var (
		race      models.Race
		raceDate  time.Time
		surface   string
		condition string
	)
	err := r.db.GetPool().QueryRow(ctx, query, raceID).Scan(
		&race.ID, &race.Track, &raceDate, &race.Distance, &surface, &condition,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get race: %w", err)
	}
	race.Date = formatDate(raceDate)
	race.Surface = models.ParseSurface(surface)
	race.Condition = models.ParseTrackCondition(condition)

	entrants, err := r.getEntrants(ctx, raceID)
	if err != nil {
		return nil, err
	}
	race.Entrants = entrants
	return &race, nil
}

func (r *PostgresRaceRepository) getEntrants(ctx context.Context, raceID uuid.UUID) ([]models.EntrantInput, error) {
	query := `
		SELECT id, horse_id, name, sire, jockey, shutuba_odds, odds,
		       shutuba_popularity, popularity, age, sex, carried_weight, gate
		FROM entrants
		WHERE race_id = $1
		ORDER BY gate, name
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entrants: %w", err)
	}
	defer rows.Close()

	var entrants []models.EntrantInput
	for rows.Next() {
		var e models.EntrantInput
		err := rows.Scan(
			&e.ID, &e.HorseID, &e.Name, &e.Sire, &e.Jockey, &e.ShutubaOdds, &e.Odds,
			&e.ShutubaPopularity, &e.Popularity, &e.Age, &e.Sex, &e.CarriedWeight, &e.Gate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entrant: %w", err)
		}
		entrants = append(entrants, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entrants: %w", err)
	}

	return entrants, nil
}

// GetByDateRange retrieves race ids within a date range
func (r *PostgresRaceRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM races
		WHERE race_date >= $1 AND race_date <= $2
		ORDER BY race_date, track, id
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query races by date range: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan race id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating races: %w", err)
	}

	return ids, nil
}
