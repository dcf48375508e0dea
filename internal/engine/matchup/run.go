// Package matchup implements the matchup matrix engine: it resolves a
// chosen play type into a PlayResult by scoring player/team ratings
// against situational modifiers.
package matchup

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/rng"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// fumbleBaseRate scales the fumble-lost probability, proportional to
// (1 - carrying/100)^2.
const fumbleBaseRate = 0.01

// ResolveRun resolves a run play end to end: concept classification,
// blocking matchup, situational adjustment, and fumble risk.
func ResolveRun(cfg *config.Config, pkg personnel.PersonnelPackage, sit config.Situation, f state.FieldState, src *rng.Source) state.PlayResult {
	conceptKey := config.ClassifyRunConcept(pkg.Formation, sit, f)
	concept, ok := cfg.RunConcepts[conceptKey]
	if !ok {
		concept = cfg.RunConcepts[config.ConceptInsideZone]
	}

	rbEff := weightedMeanNormalized(pkg.Offense.RBAttribute, concept.RBAttributeWeights)

	olRating := pkg.Offense.OL.RunBlock
	dlRating := pkg.Defense.DL.RunDef
	blockingEff := safeRatio(olRating*concept.OLModifier, dlRating*concept.DLModifier)

	combined := (0.5*rbEff + 0.5*blockingEff) * concept.FormationModifier

	multiplier := src.Uniform(0.7, 1.0+0.3*concept.Variance)
	yards := concept.BaseYards * combined * multiplier

	yards += runSituationalAdjustment(f, sit)

	finalPosition := f.FieldPosition + int(roundHalfAwayFromZero(yards))

	return buildRunResult(pkg, concept.Name, f, finalPosition, int(roundHalfAwayFromZero(yards)), src)
}

// runSituationalAdjustment nudges yardage for field position and
// situation: -1 in own territory, +1 in goal-line short-yardage.
func runSituationalAdjustment(f state.FieldState, sit config.Situation) float64 {
	adj := 0.0
	if f.FieldPosition < 50 {
		adj -= 1
	}
	if f.FieldPosition >= 90 && (sit == config.SituationThirdShort || sit == config.SituationFourthShort || sit == config.SituationGoalToGo) {
		adj += 1
	}
	return adj
}

func buildRunResult(pkg personnel.PersonnelPackage, conceptName string, f state.FieldState, finalPosition, yards int, src *rng.Source) state.PlayResult {
	result := state.PlayResult{
		PlayType:      state.PlayRun,
		YardsGained:   yards,
		Formation:     pkg.Formation,
		DefensiveCall: pkg.DefensiveCall,
		Description:   "run: " + conceptName,
	}

	// Outcome determination, evaluated in order: fumble, then
	// touchdown/safety by final position, else a plain gain.
	fumbleProb := fumbleBaseRate * oneMinusNormalizedSquared(pkg.Offense.Carrying)
	if src.Chance(fumbleProb) {
		result.Outcome = state.OutcomeFumbleLost
		result.IsTurnover = true
		return result
	}

	switch {
	case finalPosition >= 100:
		result.Outcome = state.OutcomeTouchdown
		result.IsScore = true
		result.PointsScored = 6
		result.FirstDownAchieved = true
	case finalPosition <= 0:
		result.Outcome = state.OutcomeSafety
		result.IsScore = true
		result.PointsScored = 2
	default:
		result.Outcome = state.OutcomeGain
		result.FirstDownAchieved = yards >= f.YardsToGo
	}
	return result
}

func oneMinusNormalizedSquared(rating float64) float64 {
	v := 1 - rating/100
	return v * v
}

func weightedMeanNormalized(attr func(string) float64, weights map[string]float64) float64 {
	var sum, weightTotal float64
	for name, w := range weights {
		sum += attr(name) * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0
	}
	return clamp01((sum / weightTotal) / 100)
}

func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 1
	}
	return num / den
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return float64(int(v - 0.5))
}
