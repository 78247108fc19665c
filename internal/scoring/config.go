// Package scoring turns feature records into probabilities, market divergence
// classifications and per-race marks.
package scoring

import (
	"fmt"

	"github.com/yourusername/racemarks/internal/config"
)

// DivergenceThresholds are the exclusive lower bounds of each class.
// A divergence at or below StrongOvervalued is strong_overvalued.
type DivergenceThresholds struct {
	StrongUndervalued float64
	Undervalued       float64
	Overvalued        float64
	StrongOvervalued  float64
}

// CompositeWeights define composite = p*Probability + max(0,d)*Scale*Divergence
type CompositeWeights struct {
	Probability     float64
	Divergence      float64
	DivergenceScale float64
}

// ConfidenceThresholds drive the S/A/B/C tier rules
type ConfidenceThresholds struct {
	SMaxPopularity      float64
	SMaxRecentAvg       float64
	SMaxRecentStd       float64
	AFairBand           float64
	ALongshotPopularity float64
	ALongshotDivergence float64
	AMinProbability     float64
	BMinDivergence      float64
}

// Config holds every tunable threshold of the scoring pipeline
type Config struct {
	MinProbability float64
	MaxProbability float64
	// UnknownPopularity is the popularity used to order entrants whose
	// popularity is undefined when splitting quaternary and quinary.
	UnknownPopularity float64
	Divergence        DivergenceThresholds
	Composite         CompositeWeights
	Confidence        ConfidenceThresholds
}

// DefaultConfig returns the production thresholds
func DefaultConfig() Config {
	return Config{
		MinProbability:    0.01,
		MaxProbability:    0.95,
		UnknownPopularity: 99,
		Divergence: DivergenceThresholds{
			StrongUndervalued: 0.10,
			Undervalued:       0.05,
			Overvalued:        -0.05,
			StrongOvervalued:  -0.10,
		},
		Composite: CompositeWeights{
			Probability:     0.6,
			Divergence:      0.4,
			DivergenceScale: 2,
		},
		Confidence: ConfidenceThresholds{
			SMaxPopularity:      2,
			SMaxRecentAvg:       3,
			SMaxRecentStd:       2,
			AFairBand:           0.05,
			ALongshotPopularity: 5,
			ALongshotDivergence: 0.08,
			AMinProbability:     0.2,
			BMinDivergence:      0.05,
		},
	}
}

// FromConfig converts the scoring configuration section
func FromConfig(cfg *config.ScoringConfig) (Config, error) {
	if cfg == nil {
		return DefaultConfig(), nil
	}
	c := Config{
		MinProbability:    cfg.MinProbability,
		MaxProbability:    cfg.MaxProbability,
		UnknownPopularity: cfg.UnknownPopularity,
		Divergence: DivergenceThresholds{
			StrongUndervalued: cfg.Divergence.StrongUndervalued,
			Undervalued:       cfg.Divergence.Undervalued,
			Overvalued:        cfg.Divergence.Overvalued,
			StrongOvervalued:  cfg.Divergence.StrongOvervalued,
		},
		Composite: CompositeWeights{
			Probability:     cfg.Composite.ProbabilityWeight,
			Divergence:      cfg.Composite.DivergenceWeight,
			DivergenceScale: cfg.Composite.DivergenceScale,
		},
		Confidence: ConfidenceThresholds{
			SMaxPopularity:      cfg.Confidence.SMaxPopularity,
			SMaxRecentAvg:       cfg.Confidence.SMaxRecentAvg,
			SMaxRecentStd:       cfg.Confidence.SMaxRecentStd,
			AFairBand:           cfg.Confidence.AFairBand,
			ALongshotPopularity: cfg.Confidence.ALongshotPopularity,
			ALongshotDivergence: cfg.Confidence.ALongshotDivergence,
			AMinProbability:     cfg.Confidence.AMinProbability,
			BMinDivergence:      cfg.Confidence.BMinDivergence,
		},
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects inverted or out-of-range thresholds
func (c Config) Validate() error {
	if c.MinProbability < 0 || c.MaxProbability > 1 || c.MinProbability >= c.MaxProbability {
		return fmt.Errorf("probability bounds must satisfy 0 <= min < max <= 1, got [%v, %v]", c.MinProbability, c.MaxProbability)
	}
	d := c.Divergence
	if !(d.StrongUndervalued >= d.Undervalued && d.Undervalued >= d.Overvalued && d.Overvalued >= d.StrongOvervalued) {
		return fmt.Errorf("divergence thresholds must be descending: %+v", d)
	}
	if c.Composite.Probability < 0 || c.Composite.Divergence < 0 || c.Composite.DivergenceScale < 0 {
		return fmt.Errorf("composite weights must be non-negative: %+v", c.Composite)
	}
	if c.Confidence.AFairBand < 0 {
		return fmt.Errorf("confidence fair band must be non-negative, got %v", c.Confidence.AFairBand)
	}
	return nil
}
