package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/racemarks/internal/models"
)

var hundred = decimal.NewFromInt(100)

type tally struct {
	races       int
	wins        int
	places      int
	winReturn   decimal.Decimal
	placeReturn decimal.Decimal
}

// record settles one win bet and one place bet of stake on a marked entrant.
// Payouts are quoted per 100 staked.
func (t *tally) record(finish models.EntrantFinish, finished bool, stake decimal.Decimal) {
	t.races++
	if !finished {
		return
	}
	if finish.Position == 1 {
		t.wins++
		t.winReturn = t.winReturn.Add(stake.Mul(finish.WinPayout).Div(hundred))
	}
	if finish.Position >= 1 && finish.Position <= 3 {
		t.places++
		t.placeReturn = t.placeReturn.Add(stake.Mul(finish.PlacePayout).Div(hundred))
	}
}

// BacktestState accumulates settled marks across races
type BacktestState struct {
	stake        decimal.Decimal
	byMark       map[models.Mark]*tally
	byTier       map[models.Tier]*tally
	RacesScored  int
	RacesSkipped int
}

// NewBacktestState initializes backtest state
func NewBacktestState(stake decimal.Decimal) *BacktestState {
	return &BacktestState{
		stake:  stake,
		byMark: make(map[models.Mark]*tally),
		byTier: make(map[models.Tier]*tally),
	}
}

// RecordRace settles every marked entrant of a ranked race against its outcome
func (s *BacktestState) RecordRace(ranked []models.RankedEntrant, outcome *models.RaceOutcome) {
	s.RacesScored++
	for _, e := range ranked {
		if e.Mark == models.MarkNone {
			continue
		}
		finish, finished := outcome.Finish(e.Features.EntrantID)
		tallyOf(s.byMark, e.Mark).record(finish, finished, s.stake)
		if e.Tier != models.TierUnset {
			tallyOf(s.byTier, e.Tier).record(finish, finished, s.stake)
		}
	}
}

// Skip counts a race that could not be scored or settled
func (s *BacktestState) Skip() {
	s.RacesSkipped++
}

func tallyOf[K comparable](m map[K]*tally, key K) *tally {
	t, ok := m[key]
	if !ok {
		t = &tally{}
		m[key] = t
	}
	return t
}
