package models

import (
	"github.com/google/uuid"
)

// Race is one contest with its entrant list
type Race struct {
	ID        uuid.UUID      `db:"id" json:"id" validate:"required"`
	Track     string         `db:"track" json:"track"`
	Date      string         `db:"race_date" json:"race_date"`
	Distance  int            `db:"distance" json:"distance" validate:"gte=0"`
	Surface   Surface        `db:"surface" json:"surface"`
	Condition TrackCondition `db:"condition" json:"condition"`
	Entrants  []EntrantInput `db:"-" json:"entrants" validate:"required,min=1,dive"`
}

// RaceContext is the race as seen by one entrant
type RaceContext struct {
	Distance  int
	Surface   Surface
	Condition TrackCondition
	Track     string
	Date      string
	Jockey    string
}

// ContextFor builds the race context for an entrant
func (r *Race) ContextFor(entrant *EntrantInput) RaceContext {
	return RaceContext{
		Distance:  r.Distance,
		Surface:   r.Surface,
		Condition: r.Condition,
		Track:     r.Track,
		Date:      r.Date,
		Jockey:    entrant.Jockey,
	}
}
