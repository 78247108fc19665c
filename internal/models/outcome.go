package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RaceOutcome is the settled result of a race used for backtesting
type RaceOutcome struct {
	RaceID   uuid.UUID         `db:"race_id" json:"race_id"`
	Finishes []EntrantFinish   `json:"finishes"`
	byID     map[uuid.UUID]int `json:"-"`
}

// EntrantFinish is one entrant's finish and payouts per 100 staked
type EntrantFinish struct {
	EntrantID   uuid.UUID       `db:"entrant_id" json:"entrant_id"`
	Position    int             `db:"position" json:"position"`
	WinPayout   decimal.Decimal `db:"win_payout" json:"win_payout"`
	PlacePayout decimal.Decimal `db:"place_payout" json:"place_payout"`
}

// Finish looks up an entrant's finish; ok is false for non-finishers
func (o *RaceOutcome) Finish(entrantID uuid.UUID) (EntrantFinish, bool) {
	if o.byID == nil {
		o.byID = make(map[uuid.UUID]int, len(o.Finishes))
		for i, f := range o.Finishes {
			o.byID[f.EntrantID] = i
		}
	}
	i, ok := o.byID[entrantID]
	if !ok {
		return EntrantFinish{}, false
	}
	return o.Finishes[i], true
}
