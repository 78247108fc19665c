// Package service orchestrates repositories, the stats store and the scoring
// engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/racemarks/internal/logger"
	"github.com/yourusername/racemarks/internal/metrics"
	"github.com/yourusername/racemarks/internal/models"
	"github.com/yourusername/racemarks/internal/repository"
	"github.com/yourusername/racemarks/internal/scoring"
	"github.com/yourusername/racemarks/internal/stats"
)

const (
	defaultSparseThreshold = 8
	raceDateLayout         = "2006-01-02"
)

// RaceScore is a ranked race card
type RaceScore struct {
	Race            *models.Race
	Ranked          []models.RankedEntrant
	SnapshotBuiltAt time.Time
	SnapshotRuns    int
	Duration        time.Duration
}

// Marked returns the entrants holding a mark, best first
func (r *RaceScore) Marked() []models.RankedEntrant {
	var marked []models.RankedEntrant
	for _, e := range r.Ranked {
		if e.Mark != models.MarkNone {
			marked = append(marked, e)
		}
	}
	return marked
}

// ScoringService loads a race card, attaches history and ranks it
type ScoringService struct {
	races           repository.RaceRepository
	history         repository.HistoryRepository
	store           *stats.Store
	cfg             scoring.Config
	historyLimit    int
	sparseThreshold int
	logger          *logger.ScoringLogger

	mu       sync.Mutex
	engine   *scoring.Engine
	snapshot *stats.Snapshot
}

// NewScoringService creates a new scoring service
func NewScoringService(
	races repository.RaceRepository,
	history repository.HistoryRepository,
	store *stats.Store,
	cfg scoring.Config,
	historyLimit int,
	log *logrus.Logger,
) *ScoringService {
	if historyLimit <= 0 || historyLimit > models.MaxHistory {
		historyLimit = models.MaxHistory
	}

	return &ScoringService{
		races:           races,
		history:         history,
		store:           store,
		cfg:             cfg,
		historyLimit:    historyLimit,
		sparseThreshold: defaultSparseThreshold,
		logger:          logger.NewScoringLogger(log),
	}
}

// ScoreRace ranks the race identified by raceID
func (s *ScoringService) ScoreRace(ctx context.Context, raceID uuid.UUID) (*RaceScore, error) {
	start := time.Now()

	race, err := s.LoadCard(ctx, raceID)
	if err != nil {
		metrics.RecordRaceScored("error", time.Since(start).Seconds())
		s.logger.LogScoringFailure(raceID.String(), err)
		return nil, err
	}

	return s.score(race, start)
}

// ScoreCard ranks a card whose history is already attached
func (s *ScoringService) ScoreCard(race *models.Race) (*RaceScore, error) {
	return s.score(race, time.Now())
}

// LoadCard loads a race card and attaches each entrant's recent history
func (s *ScoringService) LoadCard(ctx context.Context, raceID uuid.UUID) (*models.Race, error) {
	race, err := s.races.GetCard(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load race card: %w", err)
	}

	asOf, err := time.Parse(raceDateLayout, race.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: race date %q", models.ErrInvalidRace, race.Date)
	}

	for i := range race.Entrants {
		entrant := &race.Entrants[i]
		if entrant.HorseID == uuid.Nil {
			continue
		}
		history, err := s.history.GetRecent(ctx, entrant.HorseID, asOf, s.historyLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load history for %s: %w", entrant.Name, err)
		}
		entrant.History = history
	}

	return race, nil
}

func (s *ScoringService) score(race *models.Race, start time.Time) (*RaceScore, error) {
	snapshot := s.store.Load()
	engine := s.engineFor(snapshot)

	raceID := "<nil>"
	if race != nil {
		raceID = race.ID.String()
	}

	ranked, err := engine.RankRace(race)
	if err != nil {
		outcome := "error"
		if errors.Is(err, models.ErrInvalidRace) || errors.Is(err, models.ErrNoEntrants) {
			outcome = "invalid"
		}
		metrics.RecordRaceScored(outcome, time.Since(start).Seconds())
		s.logger.LogScoringFailure(raceID, err)
		return nil, err
	}

	result := &RaceScore{
		Race:            race,
		Ranked:          ranked,
		SnapshotBuiltAt: snapshot.BuiltAt(),
		SnapshotRuns:    snapshot.Runs(),
	}

	for _, e := range ranked {
		undefined := e.Features.UndefinedCount()
		metrics.RecordEntrant(string(e.Classification), e.Probability, undefined)
		if undefined >= s.sparseThreshold {
			s.logger.LogSparseFeatures(raceID, e.Features.EntrantName, undefined)
		}
		if e.Mark == models.MarkNone {
			continue
		}
		metrics.RecordMark(string(e.Mark), string(e.Tier))
		s.logger.LogMarkAssigned(raceID, e.Features.EntrantName, string(e.Mark), string(e.Tier),
			e.Probability, e.CompositeScore, string(e.Classification))
	}

	result.Duration = time.Since(start)
	metrics.RecordRaceScored("success", result.Duration.Seconds())
	s.logger.LogRaceScored(raceID, len(ranked), len(result.Marked()), snapshot.Runs(),
		float64(result.Duration.Microseconds())/1000)

	return result, nil
}

// engineFor reuses the engine while the store keeps returning the same snapshot
func (s *ScoringService) engineFor(snapshot *stats.Snapshot) *scoring.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil || s.snapshot != snapshot {
		s.engine = scoring.NewEngine(s.cfg, snapshot)
		s.snapshot = snapshot
	}
	return s.engine
}
