// Package stats holds the aggregate lookup tables used by feature extraction.
//
// A Snapshot is immutable once built. Refreshes build a new Snapshot and swap
// it into a Store; scoring passes read a single Snapshot for their duration.
package stats

import (
	"time"

	"github.com/yourusername/racemarks/internal/models"
)

// DistanceBucket groups race distances for the gate table
type DistanceBucket string

const (
	BucketSprint       DistanceBucket = "sprint"
	BucketMile         DistanceBucket = "mile"
	BucketIntermediate DistanceBucket = "intermediate"
	BucketLong         DistanceBucket = "long"
)

// BucketFor returns the distance bucket for a distance in metres
func BucketFor(distance int) DistanceBucket {
	switch {
	case distance < 1400:
		return BucketSprint
	case distance < 1800:
		return BucketMile
	case distance < 2200:
		return BucketIntermediate
	default:
		return BucketLong
	}
}

// JockeyKey identifies a jockey at a course and surface
type JockeyKey struct {
	Jockey  string
	Track   string
	Surface models.Surface
}

// SireKey identifies a sire's runners on a surface
type SireKey struct {
	Sire    string
	Surface models.Surface
}

// GateKey identifies a starting gate at a course configuration
type GateKey struct {
	Track   string
	Surface models.Surface
	Bucket  DistanceBucket
	Gate    int
}

// JockeyRates are the win and top-three rates of a jockey key
type JockeyRates struct {
	WinRate   float64
	PlaceRate float64
}

// Snapshot is a read-only set of aggregate tables
type Snapshot struct {
	jockeys map[JockeyKey]JockeyRates
	sires   map[SireKey]float64
	gates   map[GateKey]float64
	builtAt time.Time
	runs    int
}

// Empty returns a snapshot with no entries
func Empty() *Snapshot {
	return &Snapshot{
		jockeys: map[JockeyKey]JockeyRates{},
		sires:   map[SireKey]float64{},
		gates:   map[GateKey]float64{},
	}
}

// Jockey returns the rates for a jockey key; zero rates when absent
func (s *Snapshot) Jockey(key JockeyKey) JockeyRates {
	if s == nil {
		return JockeyRates{}
	}
	return s.jockeys[key]
}

// SireWinRate returns the sire win rate; 0.0 when absent
func (s *Snapshot) SireWinRate(key SireKey) float64 {
	if s == nil {
		return 0
	}
	return s.sires[key]
}

// GateAdvantage returns the gate advantage; 0.0 when absent
func (s *Snapshot) GateAdvantage(key GateKey) float64 {
	if s == nil {
		return 0
	}
	return s.gates[key]
}

// Size returns the number of entries across all tables
func (s *Snapshot) Size() int {
	if s == nil {
		return 0
	}
	return len(s.jockeys) + len(s.sires) + len(s.gates)
}

// Runs returns the number of historical runs the snapshot was built from
func (s *Snapshot) Runs() int {
	if s == nil {
		return 0
	}
	return s.runs
}

// BuiltAt returns when the snapshot was built
func (s *Snapshot) BuiltAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.builtAt
}
