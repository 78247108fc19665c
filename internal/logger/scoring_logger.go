// Package logger provides scoring-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ScoringLogger provides dedicated logging for race scoring.
type ScoringLogger struct {
	*logrus.Entry
}

// NewScoringLogger creates a new scoring logger.
func NewScoringLogger(baseLogger *logrus.Logger) *ScoringLogger {
	return &ScoringLogger{
		Entry: baseLogger.WithField("component", "scoring"),
	}
}

// LogRaceScored logs a completed scoring pass.
func (sl *ScoringLogger) LogRaceScored(raceID string, entrants, marked int, snapshotRuns int, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"race_id":             raceID,
		"entrants":            entrants,
		"marked":              marked,
		"snapshot_runs":       snapshotRuns,
		"scoring_duration_ms": durationMs,
	}).Info("Race scored")
}

// LogMarkAssigned logs one assigned mark.
func (sl *ScoringLogger) LogMarkAssigned(raceID, entrantName, mark, tier string, probability, compositeScore float64, classification string) {
	sl.WithFields(logrus.Fields{
		"race_id":         raceID,
		"entrant_name":    entrantName,
		"mark":            mark,
		"tier":            tier,
		"probability":     probability,
		"composite_score": compositeScore,
		"classification":  classification,
	}).Debug("Mark assigned")
}

// LogSparseFeatures warns about an entrant with many undefined features.
func (sl *ScoringLogger) LogSparseFeatures(raceID, entrantName string, undefined int) {
	sl.WithFields(logrus.Fields{
		"race_id":            raceID,
		"entrant_name":       entrantName,
		"undefined_features": undefined,
	}).Warn("Entrant scored with sparse features")
}

// LogScoringFailure logs a race that could not be scored.
func (sl *ScoringLogger) LogScoringFailure(raceID string, err error) {
	sl.WithFields(logrus.Fields{
		"race_id": raceID,
	}).WithError(err).Error("Race scoring failed")
}
