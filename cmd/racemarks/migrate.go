package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/racemarks/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the racemarks tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var err error
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		appLog.Info("Schema is up to date")
		return nil
	},
}
