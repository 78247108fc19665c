package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/racemarks/internal/models"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{"3.5", models.Float(3.5)},
		{" 1,234.5 ", models.Float(1234.5)},
		{"+4", models.Float(4)},
		{"-8", models.Float(-8)},
		{"", nil},
		{"---", nil},
		{"NaN", nil},
		{"Inf", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseNumber(tt.raw), tt.raw)
	}
}

func TestParseFinish(t *testing.T) {
	assert.Equal(t, models.Float(3), parseFinish("3"))
	assert.Equal(t, models.Float(1), parseFinish("1(降)"))
	assert.Nil(t, parseFinish("中止"))
	assert.Nil(t, parseFinish("0"))
}

func TestParseDistance(t *testing.T) {
	assert.Equal(t, models.Float(1600), parseDistance("芝1600"))
	assert.Equal(t, models.Float(2000), parseDistance("D2000m"))
	assert.Nil(t, parseDistance("unknown"))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2024-05-26", "2024/05/26", "20240526", "2024年5月26日", "2024-05-26 15:40:00"} {
		got, ok := parseDate(raw)
		assert.True(t, ok, raw)
		assert.True(t, want.Equal(got), raw)
	}

	_, ok := parseDate("last sunday")
	assert.False(t, ok)
}

func TestParseWeightChange(t *testing.T) {
	assert.Equal(t, models.Float(-6), parseWeightChange(models.PastResult{BodyWeight: "474(-6)"}))
	assert.Equal(t, models.Float(0), parseWeightChange(models.PastResult{BodyWeight: "480(0)"}))
	assert.Equal(t, models.Float(2), parseWeightChange(models.PastResult{WeightChange: "+2", BodyWeight: "480(+8)"}))
	assert.Nil(t, parseWeightChange(models.PastResult{BodyWeight: "計不"}))
}
