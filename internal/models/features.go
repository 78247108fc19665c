package models

import "github.com/google/uuid"

// FeatureRecord is the fixed feature schema for one entrant.
// Pointer fields are nil when the value could not be resolved.
type FeatureRecord struct {
	EntrantID   uuid.UUID `json:"entrant_id"`
	EntrantName string    `json:"entrant_name"`

	Odds        *float64 `json:"odds"`
	Popularity  *float64 `json:"popularity"`
	OddsWinRate *float64 `json:"odds_win_rate"`

	Age           *float64 `json:"age"`
	Sex           *float64 `json:"sex"`
	CarriedWeight *float64 `json:"carried_weight"`
	Gate          *float64 `json:"gate"`

	RecentRank1   *float64 `json:"recent_rank_1"`
	RecentRank2   *float64 `json:"recent_rank_2"`
	RecentRank3   *float64 `json:"recent_rank_3"`
	RecentRankAvg *float64 `json:"recent_rank_avg"`
	RecentRankStd *float64 `json:"recent_rank_std"`

	DaysSinceLast *float64 `json:"days_since_last"`
	WeightChange  *float64 `json:"weight_change"`
	Last3F        *float64 `json:"last_3f"`

	DistanceFitness      float64 `json:"distance_fitness"`
	TrackFitness         float64 `json:"track_fitness"`
	ConditionChangeScore float64 `json:"condition_change_score"`

	// Aggregate lookups default to 0.0 when the key has no history.
	JockeyWinRate   float64 `json:"jockey_win_rate"`
	JockeyPlaceRate float64 `json:"jockey_place_rate"`
	SireWinRate     float64 `json:"sire_win_rate"`
	GateAdvantage   float64 `json:"gate_advantage"`
}

// UndefinedCount returns the number of optional features left undefined
func (f *FeatureRecord) UndefinedCount() int {
	count := 0
	for _, v := range f.optional() {
		if v == nil {
			count++
		}
	}
	return count
}

func (f *FeatureRecord) optional() []*float64 {
	return []*float64{
		f.Odds, f.Popularity, f.OddsWinRate,
		f.Age, f.Sex, f.CarriedWeight, f.Gate,
		f.RecentRank1, f.RecentRank2, f.RecentRank3, f.RecentRankAvg, f.RecentRankStd,
		f.DaysSinceLast, f.WeightChange, f.Last3F,
	}
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}
