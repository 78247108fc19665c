package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var refreshStatsCmd = &cobra.Command{
	Use:   "refresh-stats",
	Short: "Build the aggregate statistics tables once and report their size",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupDependencies(cmd.Context()); err != nil {
			return err
		}

		snapshot, err := refresher.Refresh(cmd.Context())
		if err != nil {
			return err
		}

		appLog.WithFields(logrus.Fields{
			"runs":    snapshot.Runs(),
			"entries": snapshot.Size(),
		}).Info("Aggregate statistics ready")
		return nil
	},
}
