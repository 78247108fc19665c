package backtest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/racemarks/internal/models"
)

var tiers = []models.Tier{models.TierS, models.TierA, models.TierB, models.TierC}

// Performance summarises the bets placed on one mark or tier
type Performance struct {
	Label        string          `json:"label"`
	Races        int             `json:"races"`
	Wins         int             `json:"wins"`
	Places       int             `json:"places"`
	WinHitRate   float64         `json:"win_hit_rate"`
	PlaceHitRate float64         `json:"place_hit_rate"`
	Staked       decimal.Decimal `json:"staked"`
	WinReturn    decimal.Decimal `json:"win_return"`
	PlaceReturn  decimal.Decimal `json:"place_return"`
	WinROI       float64         `json:"win_roi"`
	PlaceROI     float64         `json:"place_roi"`
}

// Report is the outcome of a backtest run
type Report struct {
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	RacesScored  int           `json:"races_scored"`
	RacesSkipped int           `json:"races_skipped"`
	Marks        []Performance `json:"marks"`
	Tiers        []Performance `json:"tiers"`
	Duration     time.Duration `json:"duration"`
}

// CalculateMetrics builds the per-mark and per-tier report from state
func CalculateMetrics(state *BacktestState, cfg BacktestConfig) *Report {
	report := &Report{
		StartDate: cfg.StartDate,
		EndDate:   cfg.EndDate,
	}
	if state == nil {
		return report
	}

	report.RacesScored = state.RacesScored
	report.RacesSkipped = state.RacesSkipped
	for _, mark := range models.Marks {
		report.Marks = append(report.Marks, performanceOf(string(mark), state.byMark[mark], state.stake))
	}
	for _, tier := range tiers {
		report.Tiers = append(report.Tiers, performanceOf(string(tier), state.byTier[tier], state.stake))
	}
	return report
}

func performanceOf(label string, t *tally, stake decimal.Decimal) Performance {
	p := Performance{Label: label, Staked: decimal.Zero, WinReturn: decimal.Zero, PlaceReturn: decimal.Zero}
	if t == nil || t.races == 0 {
		return p
	}

	p.Races = t.races
	p.Wins = t.wins
	p.Places = t.places
	p.WinHitRate = float64(t.wins) / float64(t.races)
	p.PlaceHitRate = float64(t.places) / float64(t.races)
	p.Staked = stake.Mul(decimal.NewFromInt(int64(t.races)))
	p.WinReturn = t.winReturn
	p.PlaceReturn = t.placeReturn
	p.WinROI = roi(t.winReturn, p.Staked)
	p.PlaceROI = roi(t.placeReturn, p.Staked)
	return p
}

// roi is profit over stake; -1 means every bet lost
func roi(returned, staked decimal.Decimal) float64 {
	if !staked.IsPositive() {
		return 0
	}
	f, _ := returned.Sub(staked).Div(staked).Float64()
	return f
}
