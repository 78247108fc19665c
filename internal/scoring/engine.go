package scoring

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/racemarks/internal/features"
	"github.com/yourusername/racemarks/internal/models"
	"github.com/yourusername/racemarks/internal/stats"
)

// Engine runs extract, estimate, evaluate and assign for one race at a time.
// It holds one stats snapshot; build a new Engine to pick up a refreshed one.
type Engine struct {
	cfg       Config
	extractor *features.Extractor
	validate  *validator.Validate
}

// NewEngine creates an engine bound to a snapshot
func NewEngine(cfg Config, snapshot *stats.Snapshot) *Engine {
	return &Engine{
		cfg:       cfg,
		extractor: features.NewExtractor(snapshot),
		validate:  validator.New(),
	}
}

// Config returns the engine thresholds
func (e *Engine) Config() Config {
	return e.cfg
}

// ScoreEntrant extracts features and scores one entrant
func (e *Engine) ScoreEntrant(entrant models.EntrantInput, ctx models.RaceContext) models.ScoredEntrant {
	f := e.extractor.Extract(entrant, ctx)
	p := e.cfg.EstimateProbability(&f)
	div := e.cfg.EvaluateDivergence(&f, &p)
	return models.ScoredEntrant{
		Features:       f,
		Probability:    p,
		Divergence:     div.Divergence,
		Classification: div.Classification,
		CompositeScore: e.cfg.CompositeScore(p, div.Divergence),
	}
}

// RankRace scores every entrant of a race and assigns marks
func (e *Engine) RankRace(race *models.Race) ([]models.RankedEntrant, error) {
	if race == nil {
		return nil, fmt.Errorf("%w: race is nil", models.ErrInvalidRace)
	}
	if len(race.Entrants) == 0 {
		return nil, models.ErrNoEntrants
	}
	if err := e.validate.Struct(race); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRace, err)
	}

	scored := make([]models.ScoredEntrant, 0, len(race.Entrants))
	for i := range race.Entrants {
		entrant := &race.Entrants[i]
		scored = append(scored, e.ScoreEntrant(*entrant, race.ContextFor(entrant)))
	}
	return e.cfg.AssignRanks(scored)
}
