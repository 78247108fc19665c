// Package logger provides aggregate-statistics logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// StatsLogger provides dedicated logging for aggregate table refreshes.
type StatsLogger struct {
	*logrus.Entry
}

// NewStatsLogger creates a new stats logger.
func NewStatsLogger(baseLogger *logrus.Logger) *StatsLogger {
	return &StatsLogger{
		Entry: baseLogger.WithField("component", "stats"),
	}
}

// LogRefresh logs a snapshot swap.
func (sl *StatsLogger) LogRefresh(runs, entries, previousEntries int, since time.Time, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"runs":                runs,
		"entries":             entries,
		"previous_entries":    previousEntries,
		"since":               since.Format("2006-01-02"),
		"refresh_duration_ms": durationMs,
	}).Info("Aggregate statistics refreshed")
}

// LogRefreshFailure logs a failed refresh. The previous snapshot stays active.
func (sl *StatsLogger) LogRefreshFailure(err error) {
	sl.WithError(err).Error("Aggregate statistics refresh failed, keeping previous snapshot")
}
