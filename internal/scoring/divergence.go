package scoring

import (
	"math"

	"github.com/yourusername/racemarks/internal/models"
)

// DivergenceResult compares the estimated and market-implied probabilities
type DivergenceResult struct {
	MarketRate     *float64              `json:"market_rate"`
	AIRate         *float64              `json:"ai_rate"`
	Divergence     *float64              `json:"divergence"`
	Classification models.Classification `json:"classification"`
}

// EvaluateDivergence evaluates divergence with the default thresholds
func EvaluateDivergence(f *models.FeatureRecord, probability *float64) DivergenceResult {
	return DefaultConfig().EvaluateDivergence(f, probability)
}

// EvaluateDivergence returns probability - 1/odds and its class.
// Either side undefined gives an unknown class and no divergence.
func (c Config) EvaluateDivergence(f *models.FeatureRecord, probability *float64) DivergenceResult {
	result := DivergenceResult{
		MarketRate:     f.OddsWinRate,
		AIRate:         probability,
		Classification: models.ClassUnknown,
	}
	if result.MarketRate == nil || probability == nil {
		return result
	}
	d := *probability - *result.MarketRate
	result.Divergence = &d
	result.Classification = c.Classify(d)
	return result
}

// Classify buckets a divergence. All bounds are exclusive.
func (c Config) Classify(d float64) models.Classification {
	t := c.Divergence
	switch {
	case d > t.StrongUndervalued:
		return models.ClassStrongUndervalued
	case d > t.Undervalued:
		return models.ClassUndervalued
	case d > t.Overvalued:
		return models.ClassFair
	case d > t.StrongOvervalued:
		return models.ClassOvervalued
	default:
		return models.ClassStrongOvervalued
	}
}

// CompositeScore combines probability with positive divergence only.
// An undefined divergence contributes nothing.
func (c Config) CompositeScore(probability float64, divergence *float64) float64 {
	d := 0.0
	if divergence != nil {
		d = math.Max(0, *divergence)
	}
	w := c.Composite
	return probability*w.Probability + d*w.DivergenceScale*w.Divergence
}
