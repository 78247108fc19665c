package models

import "github.com/google/uuid"

// MaxHistory is the number of past results carried per entrant
const MaxHistory = 5

// EntrantInput is one runner on a race card as delivered by the data layer.
// Numeric attributes are kept raw; the feature extractor coerces them.
type EntrantInput struct {
	ID                uuid.UUID    `db:"id" json:"id" validate:"required"`
	HorseID           uuid.UUID    `db:"horse_id" json:"horse_id"`
	Name              string       `db:"name" json:"name" validate:"required"`
	Sire              string       `db:"sire" json:"sire"`
	Jockey            string       `db:"jockey" json:"jockey"`
	ShutubaOdds       string       `db:"shutuba_odds" json:"shutuba_odds"`
	Odds              string       `db:"odds" json:"odds"`
	ShutubaPopularity string       `db:"shutuba_popularity" json:"shutuba_popularity"`
	Popularity        string       `db:"popularity" json:"popularity"`
	Age               string       `db:"age" json:"age"`
	Sex               string       `db:"sex" json:"sex"`
	CarriedWeight     string       `db:"carried_weight" json:"carried_weight"`
	Gate              string       `db:"gate" json:"gate"`
	History           []PastResult `db:"-" json:"history" validate:"max=5"`
}

// PastResult is one previous run, most recent first in EntrantInput.History
type PastResult struct {
	Finish       string `db:"finish" json:"finish"`
	Date         string `db:"race_date" json:"date"`
	Distance     string `db:"distance" json:"distance"`
	Surface      string `db:"surface" json:"surface"`
	Condition    string `db:"condition" json:"condition"`
	Last3F       string `db:"last_3f" json:"last_3f"`
	Passage      string `db:"passage" json:"passage"`
	BodyWeight   string `db:"body_weight" json:"body_weight"`
	WeightChange string `db:"weight_change" json:"weight_change"`
}
