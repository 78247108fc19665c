// Package features turns a raw entrant and its race context into a fixed
// feature record. Extraction never fails: a field that cannot be resolved is
// left undefined and the rest of the record is still produced.
package features

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/racemarks/internal/models"
	"github.com/yourusername/racemarks/internal/stats"
)

const recentFormRuns = 3

// Extractor builds feature records against one aggregate snapshot
type Extractor struct {
	snapshot *stats.Snapshot
}

// NewExtractor creates an extractor. A nil snapshot behaves as empty tables.
func NewExtractor(snapshot *stats.Snapshot) *Extractor {
	return &Extractor{snapshot: snapshot}
}

// Extract builds the feature record for one entrant. Inputs are not modified.
func (e *Extractor) Extract(entrant models.EntrantInput, ctx models.RaceContext) models.FeatureRecord {
	f := models.FeatureRecord{
		EntrantID:   entrant.ID,
		EntrantName: entrant.Name,
	}

	f.Odds = firstDefined(parseNumber, entrant.ShutubaOdds, entrant.Odds)
	f.Popularity = firstDefined(parseNumber, entrant.ShutubaPopularity, entrant.Popularity)
	if f.Odds != nil && *f.Odds > 0 {
		f.OddsWinRate = models.Float(1 / *f.Odds)
	}

	f.Age = parseNumber(entrant.Age)
	if sex := models.ParseSex(entrant.Sex); sex != models.SexUnknown {
		f.Sex = models.Float(float64(sex))
	}
	f.CarriedWeight = parseNumber(entrant.CarriedWeight)
	f.Gate = parseNumber(entrant.Gate)

	history := entrant.History
	e.recentForm(&f, history)

	if len(history) > 0 {
		last := history[0]
		lastDate, okLast := parseDate(last.Date)
		raceDate, okRace := parseDate(ctx.Date)
		if okLast && okRace {
			f.DaysSinceLast = models.Float(math.Round(raceDate.Sub(lastDate).Hours() / 24))
		}
		f.WeightChange = parseWeightChange(last)
		f.Last3F = parseNumber(last.Last3F)
	}

	f.DistanceFitness = DistanceFitness(history, ctx.Distance)
	f.TrackFitness = TrackFitness(history, ctx.Condition, ctx.Surface)
	f.ConditionChangeScore = ConditionChangeScore(history, ctx)

	e.aggregates(&f, entrant, ctx)
	return f
}

func (e *Extractor) recentForm(f *models.FeatureRecord, history []models.PastResult) {
	slots := []**float64{&f.RecentRank1, &f.RecentRank2, &f.RecentRank3}
	defined := make([]float64, 0, recentFormRuns)
	for i, result := range window(history, 0, recentFormRuns) {
		rank := parseFinish(result.Finish)
		*slots[i] = rank
		if rank != nil {
			defined = append(defined, *rank)
		}
	}
	if len(defined) == 0 {
		return
	}
	mean, std := stat.PopMeanStdDev(defined, nil)
	f.RecentRankAvg = models.Float(mean)
	f.RecentRankStd = models.Float(std)
}

// aggregates fills the lookup features. Missing keys read as 0.0.
func (e *Extractor) aggregates(f *models.FeatureRecord, entrant models.EntrantInput, ctx models.RaceContext) {
	rates := e.snapshot.Jockey(stats.JockeyKey{Jockey: strings.TrimSpace(ctx.Jockey), Track: ctx.Track, Surface: ctx.Surface})
	f.JockeyWinRate = rates.WinRate
	f.JockeyPlaceRate = rates.PlaceRate
	f.SireWinRate = e.snapshot.SireWinRate(stats.SireKey{Sire: strings.TrimSpace(entrant.Sire), Surface: ctx.Surface})

	gate := 0
	if f.Gate != nil {
		gate = int(*f.Gate)
	}
	f.GateAdvantage = e.snapshot.GateAdvantage(stats.GateKey{
		Track:   ctx.Track,
		Surface: ctx.Surface,
		Bucket:  stats.BucketFor(ctx.Distance),
		Gate:    gate,
	})
}
