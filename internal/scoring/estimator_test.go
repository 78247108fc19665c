package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/racemarks/internal/models"
)

func TestEstimateProbability_StableTopForm(t *testing.T) {
	f := &models.FeatureRecord{
		RecentRankAvg: models.Float(2),
		RecentRankStd: models.Float(0.5),
	}
	assert.InDelta(t, 0.30, EstimateProbability(f), 1e-12)
}

func TestEstimateProbability_AllUndefined(t *testing.T) {
	assert.InDelta(t, 0.10, EstimateProbability(&models.FeatureRecord{}), 1e-12)
}

func TestEstimateProbability_BaseRates(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{1, 0.25}, {2, 0.25}, {2.5, 0.18}, {3, 0.18}, {4, 0.12}, {5, 0.12}, {7, 0.08}, {8, 0.08}, {12, 0.05},
	}
	for _, tt := range tests {
		f := &models.FeatureRecord{RecentRankAvg: models.Float(tt.avg)}
		assert.InDelta(t, tt.want, EstimateProbability(f), 1e-12, "avg %v", tt.avg)
	}
}

func TestEstimateProbability_Adjustments(t *testing.T) {
	tests := []struct {
		name string
		f    models.FeatureRecord
		want float64
	}{
		{"std at most two", models.FeatureRecord{RecentRankStd: models.Float(1.5)}, 0.10 * 1.10},
		{"std between two and five", models.FeatureRecord{RecentRankStd: models.Float(3)}, 0.10},
		{"erratic form", models.FeatureRecord{RecentRankStd: models.Float(5)}, 0.10 * 0.90},
		{"distance fitness", models.FeatureRecord{DistanceFitness: 2}, 0.10 * 1.4},
		{"negative distance fitness ignored", models.FeatureRecord{DistanceFitness: -0.5}, 0.10},
		{"track fitness", models.FeatureRecord{TrackFitness: 1}, 0.10 * 1.15},
		{"strong jockey", models.FeatureRecord{JockeyWinRate: 0.30}, 0.10 * 1.10},
		{"baseline jockey", models.FeatureRecord{JockeyWinRate: 0.10}, 0.10},
		{"ideal freshness", models.FeatureRecord{DaysSinceLast: models.Float(28)}, 0.10 * 1.05},
		{"long layoff", models.FeatureRecord{DaysSinceLast: models.Float(180)}, 0.10 * 0.85},
		{"quick return", models.FeatureRecord{DaysSinceLast: models.Float(6)}, 0.10 * 0.90},
		{"neutral gap", models.FeatureRecord{DaysSinceLast: models.Float(90)}, 0.10},
		{"weight swing", models.FeatureRecord{WeightChange: models.Float(12)}, 0.10 * 0.95},
		{"heavy weight loss", models.FeatureRecord{WeightChange: models.Float(-16)}, 0.10 * 0.95 * 0.90},
		{"condition change", models.FeatureRecord{ConditionChangeScore: 1.5}, 0.10 * 1.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateProbability(&tt.f), 1e-12)
		})
	}
}

func TestEstimateProbability_Clamped(t *testing.T) {
	high := &models.FeatureRecord{
		RecentRankAvg:        models.Float(1),
		RecentRankStd:        models.Float(0),
		DistanceFitness:      2,
		TrackFitness:         2.5,
		JockeyWinRate:        1,
		DaysSinceLast:        models.Float(21),
		ConditionChangeScore: 4.5,
	}
	low := &models.FeatureRecord{
		RecentRankAvg: models.Float(18),
		RecentRankStd: models.Float(8),
		DaysSinceLast: models.Float(400),
		WeightChange:  models.Float(-30),
	}

	assert.LessOrEqual(t, EstimateProbability(high), 0.95)
	assert.GreaterOrEqual(t, EstimateProbability(low), 0.01)

	cfg := DefaultConfig()
	cfg.MinProbability = 0.05
	assert.Equal(t, 0.05, cfg.EstimateProbability(low))
}

func TestEstimateProbability_AlwaysInRange(t *testing.T) {
	values := []*float64{nil, models.Float(0), models.Float(1), models.Float(3), models.Float(9), models.Float(200), models.Float(-40)}
	scalars := []float64{-3, 0, 0.4, 5}

	for _, avg := range values {
		for _, std := range values {
			for _, days := range values {
				for _, s := range scalars {
					f := &models.FeatureRecord{
						RecentRankAvg:        avg,
						RecentRankStd:        std,
						DaysSinceLast:        days,
						WeightChange:         days,
						DistanceFitness:      s,
						TrackFitness:         s,
						ConditionChangeScore: s,
						JockeyWinRate:        math.Abs(s) / 5,
					}
					p := EstimateProbability(f)
					assert.True(t, p >= 0.01 && p <= 0.95, "p=%v", p)
				}
			}
		}
	}
}
