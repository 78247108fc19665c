package stats

import (
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/racemarks/internal/models"
)

const defaultMinSamples = 10

// Run is one historical run used to build the aggregate tables
type Run struct {
	Jockey   string
	Sire     string
	Track    string
	Surface  models.Surface
	Distance int
	Gate     int
	Finish   int
}

type tally struct {
	runs   int
	wins   int
	places int
}

func (t *tally) add(finish int) {
	t.runs++
	if finish == 1 {
		t.wins++
	}
	if finish >= 1 && finish <= 3 {
		t.places++
	}
}

func (t tally) winRate() float64 {
	if t.runs == 0 {
		return 0
	}
	return float64(t.wins) / float64(t.runs)
}

func (t tally) placeRate() float64 {
	if t.runs == 0 {
		return 0
	}
	return float64(t.places) / float64(t.runs)
}

type courseKey struct {
	Track   string
	Surface models.Surface
	Bucket  DistanceBucket
}

// Builder accumulates historical runs into a Snapshot
type Builder struct {
	minSamples int
	now        func() time.Time
	jockeys    map[JockeyKey]*tally
	sires      map[SireKey]*tally
	gates      map[GateKey]*tally
	runs       int
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithMinSamples drops keys with fewer runs than n
func WithMinSamples(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.minSamples = n
		}
	}
}

// WithClock overrides the build timestamp source
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates an empty builder
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		minSamples: defaultMinSamples,
		now:        time.Now,
		jockeys:    make(map[JockeyKey]*tally),
		sires:      make(map[SireKey]*tally),
		gates:      make(map[GateKey]*tally),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add records one run. Runs without a finish position are ignored.
func (b *Builder) Add(run Run) {
	if run.Finish <= 0 {
		return
	}
	b.runs++

	if jockey := strings.TrimSpace(run.Jockey); jockey != "" {
		key := JockeyKey{Jockey: jockey, Track: run.Track, Surface: run.Surface}
		tallyFor(b.jockeys, key).add(run.Finish)
	}
	if sire := strings.TrimSpace(run.Sire); sire != "" {
		key := SireKey{Sire: sire, Surface: run.Surface}
		tallyFor(b.sires, key).add(run.Finish)
	}
	if run.Gate > 0 && run.Distance > 0 {
		key := GateKey{Track: run.Track, Surface: run.Surface, Bucket: BucketFor(run.Distance), Gate: run.Gate}
		tallyFor(b.gates, key).add(run.Finish)
	}
}

// Build produces an immutable snapshot of the accumulated runs.
// Gate advantage is the gate's win rate minus the mean gate win rate of its course.
func (b *Builder) Build() *Snapshot {
	snap := Empty()
	snap.runs = b.runs
	snap.builtAt = b.now()

	for key, t := range b.jockeys {
		if t.runs < b.minSamples {
			continue
		}
		snap.jockeys[key] = JockeyRates{WinRate: t.winRate(), PlaceRate: t.placeRate()}
	}
	for key, t := range b.sires {
		if t.runs < b.minSamples {
			continue
		}
		snap.sires[key] = t.winRate()
	}

	courses := make(map[courseKey][]float64)
	for key, t := range b.gates {
		if t.runs < b.minSamples {
			continue
		}
		ck := courseKey{Track: key.Track, Surface: key.Surface, Bucket: key.Bucket}
		courses[ck] = append(courses[ck], t.winRate())
	}
	for key, t := range b.gates {
		if t.runs < b.minSamples {
			continue
		}
		rates := courses[courseKey{Track: key.Track, Surface: key.Surface, Bucket: key.Bucket}]
		snap.gates[key] = t.winRate() - stat.Mean(rates, nil)
	}

	return snap
}

func tallyFor[K comparable](m map[K]*tally, key K) *tally {
	t, ok := m[key]
	if !ok {
		t = &tally{}
		m[key] = t
	}
	return t
}
