package scoring

import (
	"math"
	"sort"

	"github.com/yourusername/racemarks/internal/models"
)

var topMarks = []models.Mark{models.MarkPrimary, models.MarkSecondary, models.MarkTertiary}

// AssignRanks ranks entrants with the default thresholds
func AssignRanks(scored []models.ScoredEntrant) ([]models.RankedEntrant, error) {
	return DefaultConfig().AssignRanks(scored)
}

// AssignRanks orders one race by composite score and assigns marks and tiers.
//
// The sort is stable, so entrants with equal scores keep their input order.
// Positions 1-3 get primary, secondary and tertiary. With five or more
// entrants, positions 4 and 5 are split by popularity: the more popular gets
// quaternary and is tiered as rank index 4, the other gets quinary and is
// tiered as rank index 3. With exactly four entrants, position 4 gets quinary.
// The input slice is not modified.
func (c Config) AssignRanks(scored []models.ScoredEntrant) ([]models.RankedEntrant, error) {
	if len(scored) == 0 {
		return nil, models.ErrNoEntrants
	}

	ranked := make([]models.RankedEntrant, len(scored))
	for i, s := range scored {
		s.CompositeScore = c.CompositeScore(s.Probability, s.Divergence)
		ranked[i] = models.RankedEntrant{ScoredEntrant: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})

	for i := range ranked {
		ranked[i].Position = i + 1
		ranked[i].Mark = models.MarkNone
		ranked[i].Tier = models.TierUnset
	}
	for i := 0; i < len(ranked) && i < len(topMarks); i++ {
		ranked[i].Mark = topMarks[i]
		ranked[i].Tier = c.Tier(&ranked[i].ScoredEntrant, i)
	}

	switch {
	case len(ranked) >= 5:
		favoured, other := 3, 4
		if c.popularity(&ranked[4]) < c.popularity(&ranked[3]) {
			favoured, other = 4, 3
		}
		ranked[favoured].Mark = models.MarkQuaternary
		ranked[favoured].Tier = c.Tier(&ranked[favoured].ScoredEntrant, 4)
		ranked[other].Mark = models.MarkQuinary
		ranked[other].Tier = c.Tier(&ranked[other].ScoredEntrant, 3)
	case len(ranked) == 4:
		ranked[3].Mark = models.MarkQuinary
		ranked[3].Tier = c.Tier(&ranked[3].ScoredEntrant, 3)
	}

	return ranked, nil
}

func (c Config) popularity(r *models.RankedEntrant) float64 {
	if p := r.Features.Popularity; p != nil {
		return *p
	}
	return c.UnknownPopularity
}

// Tier computes the confidence tier for an entrant at rankIndex.
// Rules are checked S, then A, then B; anything else is C. A comparison that
// reads an undefined value is false.
func (c Config) Tier(s *models.ScoredEntrant, rankIndex int) models.Tier {
	t := c.Confidence
	f := &s.Features
	pop, div := f.Popularity, s.Divergence

	if rankIndex == 0 && pop != nil && *pop <= t.SMaxPopularity &&
		f.RecentRankAvg != nil && *f.RecentRankAvg <= t.SMaxRecentAvg &&
		f.RecentRankStd != nil && *f.RecentRankStd <= t.SMaxRecentStd {
		return models.TierS
	}

	switch {
	case rankIndex == 0 && div != nil && math.Abs(*div) < t.AFairBand:
		return models.TierA
	case pop != nil && *pop >= t.ALongshotPopularity && div != nil && *div > t.ALongshotDivergence:
		return models.TierA
	case rankIndex <= 1 && s.Probability > t.AMinProbability:
		return models.TierA
	}

	if rankIndex <= 2 || (div != nil && *div > t.BMinDivergence) {
		return models.TierB
	}
	return models.TierC
}
