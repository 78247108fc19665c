package scoring

import (
	"math"

	"github.com/yourusername/racemarks/internal/models"
)

const (
	baseRateUnknown = 0.10

	distanceFitnessFactor = 0.20
	trackFitnessFactor    = 0.15
	jockeyBaselineRate    = 0.10
	jockeyFactor          = 0.50
	conditionChangeFactor = 0.10
)

// EstimateProbability estimates win probability with the default bounds
func EstimateProbability(f *models.FeatureRecord) float64 {
	return DefaultConfig().EstimateProbability(f)
}

// EstimateProbability estimates win probability from recent form and applies
// fixed multiplicative adjustments. The result is clamped to the configured
// bounds. Undefined features leave their adjustment out.
func (c Config) EstimateProbability(f *models.FeatureRecord) float64 {
	p := baseRate(f.RecentRankAvg)

	if std := f.RecentRankStd; std != nil {
		switch {
		case *std <= 1:
			p *= 1.20
		case *std <= 2:
			p *= 1.10
		case *std >= 5:
			p *= 0.90
		}
	}

	if f.DistanceFitness > 0 {
		p *= 1 + f.DistanceFitness*distanceFitnessFactor
	}
	if f.TrackFitness > 0 {
		p *= 1 + f.TrackFitness*trackFitnessFactor
	}
	if f.JockeyWinRate > jockeyBaselineRate {
		p *= 1 + (f.JockeyWinRate-jockeyBaselineRate)*jockeyFactor
	}

	if days := f.DaysSinceLast; days != nil {
		switch {
		case *days >= 14 && *days <= 56:
			p *= 1.05
		case *days > 120:
			p *= 0.85
		case *days < 7:
			p *= 0.90
		}
	}

	if delta := f.WeightChange; delta != nil {
		if math.Abs(*delta) > 10 {
			p *= 0.95
		}
		if *delta < -15 {
			p *= 0.90
		}
	}

	if f.ConditionChangeScore > 0 {
		p *= 1 + f.ConditionChangeScore*conditionChangeFactor
	}

	return c.clamp(p)
}

func baseRate(avg *float64) float64 {
	if avg == nil {
		return baseRateUnknown
	}
	switch {
	case *avg <= 2:
		return 0.25
	case *avg <= 3:
		return 0.18
	case *avg <= 5:
		return 0.12
	case *avg <= 8:
		return 0.08
	default:
		return 0.05
	}
}

func (c Config) clamp(p float64) float64 {
	if math.IsNaN(p) {
		return c.MinProbability
	}
	return math.Max(c.MinProbability, math.Min(c.MaxProbability, p))
}
