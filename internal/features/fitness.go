package features

import (
	"math"

	"github.com/yourusername/racemarks/internal/models"
)

const fitnessWindow = 5

// DistanceFitness scores how the entrant ran at distances near the current one.
// Runs within 200m score 2.0 for a top-three finish and 1.0 for fourth or fifth;
// runs more than 400m away score -0.5. Runs in between are not counted.
func DistanceFitness(history []models.PastResult, currentDistance int) float64 {
	if currentDistance <= 0 {
		return 0
	}
	var sum float64
	count := 0
	for _, result := range window(history, 0, fitnessWindow) {
		finish := parseFinish(result.Finish)
		distance := parseDistance(result.Distance)
		if finish == nil || distance == nil {
			continue
		}
		delta := math.Abs(*distance - float64(currentDistance))
		switch {
		case delta <= 200:
			if *finish <= 3 {
				sum += 2.0
			} else if *finish <= 5 {
				sum += 1.0
			}
			count++
		case delta > 400:
			sum -= 0.5
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// TrackFitness scores past form on the current surface and going.
// The surface and condition checks are independent, so one run may be
// counted twice.
func TrackFitness(history []models.PastResult, condition models.TrackCondition, surface models.Surface) float64 {
	var sum float64
	count := 0
	for _, result := range window(history, 0, fitnessWindow) {
		finish := parseFinish(result.Finish)
		if finish == nil {
			continue
		}
		if surface.Same(models.ParseSurface(result.Surface)) {
			if *finish <= 3 {
				sum += 1.5
			} else if *finish <= 5 {
				sum += 0.5
			}
			count++
		}
		if condition.Same(models.ParseTrackCondition(result.Condition)) {
			if *finish <= 3 {
				sum += 1.0
			}
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// ConditionChangeScore rewards a beaten last run that came under different
// conditions from today's: a big distance change, a better going, or a switch
// back to a surface the entrant has placed on before.
func ConditionChangeScore(history []models.PastResult, ctx models.RaceContext) float64 {
	if len(history) == 0 {
		return 0
	}
	last := history[0]
	finish := parseFinish(last.Finish)
	score := 0.0

	if finish != nil && *finish >= 10 && ctx.Distance > 0 {
		if distance := parseDistance(last.Distance); distance != nil {
			delta := math.Abs(float64(ctx.Distance) - *distance)
			if delta >= 400 {
				score += 1.5
			} else if delta >= 200 {
				score += 1.0
			}
		}
	}

	lastCondition := models.ParseTrackCondition(last.Condition)
	if finish != nil && *finish >= 8 && ctx.Condition.Known() && lastCondition.Known() {
		if ctx.Condition.Weight() > lastCondition.Weight() {
			score += 1.0 * (ctx.Condition.Weight() - lastCondition.Weight())
		}
	}

	if ctx.Surface.Known() && models.ParseSurface(last.Surface) != ctx.Surface {
		for _, result := range window(history, 1, fitnessWindow+1) {
			placed := parseFinish(result.Finish)
			if ctx.Surface.Same(models.ParseSurface(result.Surface)) && placed != nil && *placed <= 5 {
				score += 1.5
				break
			}
		}
	}

	return score
}

// window returns history[from:to] clipped to its length
func window(history []models.PastResult, from, to int) []models.PastResult {
	if from >= len(history) {
		return nil
	}
	if to > len(history) {
		to = len(history)
	}
	return history[from:to]
}
