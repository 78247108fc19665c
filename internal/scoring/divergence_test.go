package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/racemarks/internal/models"
)

func TestEvaluateDivergence_RoundTripIsFair(t *testing.T) {
	for _, odds := range []float64{1.5, 2.0, 4.0, 7.3, 55.0} {
		f := &models.FeatureRecord{Odds: models.Float(odds), OddsWinRate: models.Float(1 / odds)}
		p := 1 / odds

		result := EvaluateDivergence(f, &p)
		require.NotNil(t, result.Divergence)
		assert.Equal(t, 0.0, *result.Divergence)
		assert.Equal(t, models.ClassFair, result.Classification)
	}
}

func TestEvaluateDivergence_ExclusiveBoundary(t *testing.T) {
	f := &models.FeatureRecord{Odds: models.Float(4.0), OddsWinRate: models.Float(0.25)}
	p := 0.30

	result := EvaluateDivergence(f, &p)
	require.NotNil(t, result.Divergence)
	assert.InDelta(t, 0.05, *result.Divergence, 1e-12)
	assert.Equal(t, models.ClassFair, result.Classification)
	assert.Equal(t, f.OddsWinRate, result.MarketRate)
	assert.Equal(t, &p, result.AIRate)
}

func TestEvaluateDivergence_Undefined(t *testing.T) {
	p := 0.2
	result := EvaluateDivergence(&models.FeatureRecord{}, &p)
	assert.Nil(t, result.Divergence)
	assert.Equal(t, models.ClassUnknown, result.Classification)

	result = EvaluateDivergence(&models.FeatureRecord{OddsWinRate: models.Float(0.2)}, nil)
	assert.Nil(t, result.Divergence)
	assert.Equal(t, models.ClassUnknown, result.Classification)
}

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		d    float64
		want models.Classification
	}{
		{0.25, models.ClassStrongUndervalued},
		{0.1001, models.ClassStrongUndervalued},
		{0.10, models.ClassUndervalued},
		{0.06, models.ClassUndervalued},
		{0.05, models.ClassFair},
		{0, models.ClassFair},
		{-0.0499, models.ClassFair},
		{-0.05, models.ClassOvervalued},
		{-0.0999, models.ClassOvervalued},
		{-0.10, models.ClassStrongOvervalued},
		{-0.5, models.ClassStrongOvervalued},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Classify(tt.d), "d=%v", tt.d)
	}
}

func TestCompositeScore(t *testing.T) {
	cfg := DefaultConfig()

	assert.InDelta(t, 0.18, cfg.CompositeScore(0.30, nil), 1e-12)
	assert.InDelta(t, 0.18, cfg.CompositeScore(0.30, models.Float(-0.2)), 1e-12)
	assert.InDelta(t, 0.18+0.1*2*0.4, cfg.CompositeScore(0.30, models.Float(0.1)), 1e-12)

	// monotone in probability with divergence fixed, and in positive divergence
	d := models.Float(0.03)
	prev := cfg.CompositeScore(0.01, d)
	for p := 0.02; p <= 0.95; p += 0.01 {
		next := cfg.CompositeScore(p, d)
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
	prev = cfg.CompositeScore(0.2, models.Float(0.001))
	for v := 0.002; v < 0.5; v += 0.01 {
		next := cfg.CompositeScore(0.2, models.Float(v))
		assert.GreaterOrEqual(t, next, prev)
		prev = next
	}
}
