package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/racemarks/internal/config"
)

//go:embed schema.sql
var schemaSQL string

var requiredTables = []string{"races", "entrants", "results", "payouts"}

// Initialize creates a connection pool and verifies the schema is present
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, table := range requiredTables {
		var exists bool
		err := db.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&exists)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to inspect schema: %w", err)
		}
		if !exists {
			db.Close()
			return nil, fmt.Errorf("table %q not found, run 'racemarks migrate' first", table)
		}
	}

	return db, nil
}

// EnsureSchema creates the tables and indexes if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	return db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		return nil
	})
}
