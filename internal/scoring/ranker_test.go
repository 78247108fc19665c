package scoring

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/racemarks/internal/models"
)

type entrantSpec struct {
	name       string
	prob       float64
	popularity *float64
	divergence *float64
}

func scored(specs ...entrantSpec) []models.ScoredEntrant {
	out := make([]models.ScoredEntrant, len(specs))
	for i, s := range specs {
		out[i] = models.ScoredEntrant{
			Features: models.FeatureRecord{
				EntrantID:   uuid.New(),
				EntrantName: s.name,
				Popularity:  s.popularity,
			},
			Probability: s.prob,
			Divergence:  s.divergence,
		}
	}
	return out
}

func byName(ranked []models.RankedEntrant) map[string]models.RankedEntrant {
	m := make(map[string]models.RankedEntrant, len(ranked))
	for _, r := range ranked {
		m[r.Features.EntrantName] = r
	}
	return m
}

func TestAssignRanks_Empty(t *testing.T) {
	_, err := AssignRanks(nil)
	assert.ErrorIs(t, err, models.ErrNoEntrants)
}

func TestAssignRanks_OrdersByComposite(t *testing.T) {
	ranked, err := AssignRanks(scored(
		entrantSpec{name: "c", prob: 0.10},
		entrantSpec{name: "a", prob: 0.30},
		entrantSpec{name: "b", prob: 0.20, divergence: models.Float(0.08)},
	))
	require.NoError(t, err)

	// b: 0.12 + 0.064 = 0.184 beats a: 0.18
	names := []string{ranked[0].Features.EntrantName, ranked[1].Features.EntrantName, ranked[2].Features.EntrantName}
	assert.Equal(t, []string{"b", "a", "c"}, names)
	assert.InDelta(t, 0.184, ranked[0].CompositeScore, 1e-12)
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Position)
	}
	assert.Equal(t, models.MarkPrimary, ranked[0].Mark)
	assert.Equal(t, models.MarkSecondary, ranked[1].Mark)
	assert.Equal(t, models.MarkTertiary, ranked[2].Mark)
}

func TestAssignRanks_OneOfEachTopMark(t *testing.T) {
	for n := 3; n <= 12; n++ {
		specs := make([]entrantSpec, n)
		for i := range specs {
			specs[i] = entrantSpec{name: fmt.Sprintf("e%d", i), prob: float64(n-i) / 100, popularity: models.Float(float64(i + 1))}
		}
		ranked, err := AssignRanks(scored(specs...))
		require.NoError(t, err)

		counts := map[models.Mark]int{}
		for _, r := range ranked {
			counts[r.Mark]++
		}
		assert.Equal(t, 1, counts[models.MarkPrimary])
		assert.Equal(t, 1, counts[models.MarkSecondary])
		assert.Equal(t, 1, counts[models.MarkTertiary])
		if n >= 5 {
			assert.Equal(t, 1, counts[models.MarkQuaternary])
			assert.Equal(t, 1, counts[models.MarkQuinary])
			assert.Equal(t, n-5, counts[models.MarkNone])
		}
	}
}

func TestAssignRanks_FourEntrantsGetQuinary(t *testing.T) {
	ranked, err := AssignRanks(scored(
		entrantSpec{name: "a", prob: 0.4},
		entrantSpec{name: "b", prob: 0.3},
		entrantSpec{name: "c", prob: 0.2},
		entrantSpec{name: "d", prob: 0.1, popularity: models.Float(1)},
	))
	require.NoError(t, err)

	assert.Equal(t, models.MarkQuinary, ranked[3].Mark)
	for _, r := range ranked {
		assert.NotEqual(t, models.MarkQuaternary, r.Mark)
	}
	// rank index 3 is past the B cut-off and d has no divergence
	assert.Equal(t, models.TierC, ranked[3].Tier)
}

func TestAssignRanks_PopularityDecidesFourthAndFifth(t *testing.T) {
	tests := []struct {
		name      string
		fourthPop *float64
		fifthPop  *float64
		wantQuat  string
	}{
		{"fifth more popular", models.Float(9), models.Float(3), "e"},
		{"fourth more popular", models.Float(3), models.Float(9), "d"},
		{"tie keeps rank order", models.Float(6), models.Float(6), "d"},
		{"undefined sorts last", nil, models.Float(12), "e"},
		{"both undefined keeps rank order", nil, nil, "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := AssignRanks(scored(
				entrantSpec{name: "a", prob: 0.5},
				entrantSpec{name: "b", prob: 0.4},
				entrantSpec{name: "c", prob: 0.3},
				entrantSpec{name: "d", prob: 0.2, popularity: tt.fourthPop},
				entrantSpec{name: "e", prob: 0.1, popularity: tt.fifthPop},
				entrantSpec{name: "f", prob: 0.05},
			))
			require.NoError(t, err)

			m := byName(ranked)
			assert.Equal(t, models.MarkQuaternary, m[tt.wantQuat].Mark)
			other := "d"
			if tt.wantQuat == "d" {
				other = "e"
			}
			assert.Equal(t, models.MarkQuinary, m[other].Mark)
			assert.Equal(t, models.MarkNone, m["f"].Mark)
			// positions follow composite order regardless of marks
			assert.Equal(t, 4, m["d"].Position)
			assert.Equal(t, 5, m["e"].Position)
		})
	}
}

func TestAssignRanks_SwappedTierIndex(t *testing.T) {
	// a longshot with divergence above the B floor but below the A longshot
	// floor is B at any index; without divergence only index <= 2 reaches B,
	// so both lower marks are C whichever index they are tiered with
	ranked, err := AssignRanks(scored(
		entrantSpec{name: "a", prob: 0.5},
		entrantSpec{name: "b", prob: 0.4},
		entrantSpec{name: "c", prob: 0.3},
		entrantSpec{name: "d", prob: 0.02, popularity: models.Float(8), divergence: models.Float(0.06)},
		entrantSpec{name: "e", prob: 0.01, popularity: models.Float(2)},
	))
	require.NoError(t, err)

	m := byName(ranked)
	assert.Equal(t, models.MarkQuaternary, m["e"].Mark)
	assert.Equal(t, models.MarkQuinary, m["d"].Mark)
	assert.Equal(t, models.TierB, m["d"].Tier)
	assert.Equal(t, models.TierC, m["e"].Tier)
}

func TestAssignRanks_StableOnTies(t *testing.T) {
	input := scored(
		entrantSpec{name: "first", prob: 0.2, divergence: models.Float(0.05)},
		entrantSpec{name: "second", prob: 0.2, divergence: models.Float(0.05)},
		entrantSpec{name: "third", prob: 0.2, divergence: models.Float(0.05)},
	)

	ranked, err := AssignRanks(input)
	require.NoError(t, err)
	assert.Equal(t, "first", ranked[0].Features.EntrantName)
	assert.Equal(t, "second", ranked[1].Features.EntrantName)
	assert.Equal(t, "third", ranked[2].Features.EntrantName)

	// input untouched
	assert.Equal(t, 0.0, input[0].CompositeScore)
}

func TestAssignRanks_SingleEntrant(t *testing.T) {
	ranked, err := AssignRanks(scored(entrantSpec{name: "solo", prob: 0.5}))
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, models.MarkPrimary, ranked[0].Mark)
}

func TestTier(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name  string
		s     models.ScoredEntrant
		index int
		want  models.Tier
	}{
		{
			name: "S favourite with consistent form",
			s: models.ScoredEntrant{Features: models.FeatureRecord{
				Popularity: models.Float(1), RecentRankAvg: models.Float(2), RecentRankStd: models.Float(1),
			}},
			index: 0,
			want:  models.TierS,
		},
		{
			name: "S needs rank index zero",
			s: models.ScoredEntrant{Features: models.FeatureRecord{
				Popularity: models.Float(1), RecentRankAvg: models.Float(2), RecentRankStd: models.Float(1),
			}},
			index: 1,
			want:  models.TierB,
		},
		{
			name: "S needs defined form",
			s: models.ScoredEntrant{Features: models.FeatureRecord{
				Popularity: models.Float(1), RecentRankAvg: models.Float(2),
			}},
			index: 0,
			want:  models.TierB,
		},
		{
			name:  "A fairly priced top pick",
			s:     models.ScoredEntrant{Divergence: models.Float(-0.04)},
			index: 0,
			want:  models.TierA,
		},
		{
			name: "A value longshot",
			s: models.ScoredEntrant{
				Features:   models.FeatureRecord{Popularity: models.Float(7)},
				Divergence: models.Float(0.09),
			},
			index: 4,
			want:  models.TierA,
		},
		{
			name:  "A confident second pick",
			s:     models.ScoredEntrant{Probability: 0.21},
			index: 1,
			want:  models.TierA,
		},
		{
			name:  "B by index",
			s:     models.ScoredEntrant{Probability: 0.21},
			index: 2,
			want:  models.TierB,
		},
		{
			name:  "B by divergence",
			s:     models.ScoredEntrant{Divergence: models.Float(0.051)},
			index: 4,
			want:  models.TierB,
		},
		{
			name:  "C otherwise",
			s:     models.ScoredEntrant{Divergence: models.Float(0.05)},
			index: 3,
			want:  models.TierC,
		},
		{
			name:  "undefined divergence fails comparisons",
			s:     models.ScoredEntrant{Probability: 0.1},
			index: 0,
			want:  models.TierB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Tier(&tt.s, tt.index))
		})
	}
}
