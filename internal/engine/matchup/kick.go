package matchup

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/rng"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// ResolveFieldGoal resolves a field-goal attempt. Distance is measured
// the way broadcasts quote it: yards to the goal line plus the 17
// yards from goal line to the back of the end zone/holder spot (a kick
// from the opponent 20 is a 37-yard attempt).
func ResolveFieldGoal(pkg personnel.PersonnelPackage, f state.FieldState, src *rng.Source) state.PlayResult {
	distance := f.DistanceToGoal() + 17

	prob := fieldGoalProbability(distance, pkg.Offense.Kicking)

	if src.Chance(prob) {
		return state.PlayResult{
			PlayType: state.PlayFieldGoal, KickContext: state.KickContextFieldGoal,
			Outcome: state.OutcomeFieldGoalGood, IsScore: true, PointsScored: 3,
			StopsClock: true, Description: "field goal good",
		}
	}
	return state.PlayResult{
		PlayType: state.PlayFieldGoal, KickContext: state.KickContextFieldGoal,
		Outcome: state.OutcomeFieldGoalMissed, IsTurnover: true,
		StopsClock: true, Description: "field goal missed",
	}
}

// fieldGoalProbability buckets attempts into distance bands, with the
// kicker's leg rating nudging the result within a band rather than
// overriding it.
func fieldGoalProbability(distance int, kickerRating float64) float64 {
	base := 0.35
	switch {
	case distance < 35:
		base = 0.95
	case distance <= 45:
		base = 0.85
	case distance <= 55:
		base = 0.65
	}
	skill := (kickerRating - 75) / 100 * 0.05 // +-small nudge around a 75 baseline
	return clamp01(base + skill)
}

// ResolveExtraPoint resolves the extra-point attempt. It is only ever
// reached via the extra_point context tag, never by inferring from the
// 2-yard spot.
func ResolveExtraPoint(src *rng.Source) state.PlayResult {
	if src.Chance(0.95) {
		return state.PlayResult{
			PlayType: state.PlayExtraPoint, KickContext: state.KickContextExtraPoint,
			Outcome: state.OutcomeExtraPointGood, IsScore: true, PointsScored: 1,
			StopsClock: true, Description: "extra point good",
		}
	}
	return state.PlayResult{
		PlayType: state.PlayExtraPoint, KickContext: state.KickContextExtraPoint,
		Outcome: state.OutcomeExtraPointMissed, StopsClock: true, Description: "extra point missed",
	}
}

// ResolveTwoPoint treats a 2-point conversion as a mini run or pass
// play from the 2-yard line. runOrPassResult is the outcome of
// resolving that mini play via ResolveRun/ResolvePass against a
// synthetic 2-yard-line FieldState (TwoPointFieldState below); this
// function only translates that into the two-point-specific outcome.
func ResolveTwoPoint(runOrPassResult state.PlayResult) state.PlayResult {
	result := runOrPassResult
	result.KickContext = state.KickContextTwoPoint
	result.StopsClock = true
	if runOrPassResult.Outcome == state.OutcomeTouchdown || runOrPassResult.FirstDownAchieved && runOrPassResult.YardsGained >= 2 {
		result.Outcome = state.OutcomeTwoPointGood
		result.IsScore = true
		result.PointsScored = 2
	} else {
		result.Outcome = state.OutcomeTwoPointFailed
		result.IsScore = false
		result.PointsScored = 0
	}
	result.FirstDownAchieved = false
	return result
}

// TwoPointFieldState is the synthetic spot a two-point attempt is
// resolved from: 2 yards from the goal line, 1st and goal.
func TwoPointFieldState(possessionTeamID, defensiveTeamID string) state.FieldState {
	return state.FieldState{
		FieldPosition:    98,
		Down:             1,
		YardsToGo:        2,
		PossessionTeamID: possessionTeamID,
		DefensiveTeamID:  defensiveTeamID,
	}
}

const (
	puntMeanYards   = 42.0
	puntStdDevYards = 8.0
)

// ResolvePunt draws punt distance from a 42±8 yard normal distribution,
// then subtracts coverage-based return yards, with blocks at a small
// probability. The normal-distribution roll is the one place this
// engine reaches for gonum's distuv rather than the rng package's own
// uniform helper.
func ResolvePunt(pkg personnel.PersonnelPackage, f state.FieldState, src *rng.Source) state.PlayResult {
	if src.Chance(0.015) {
		return state.PlayResult{
			PlayType: state.PlayPunt, Outcome: state.OutcomePenalty,
			StopsClock: true, IsTurnover: true, Description: "punt blocked",
		}
	}

	dist := distuv.Normal{Mu: puntMeanYards, Sigma: puntStdDevYards, Src: src.Rand()}
	puntYards := int(roundHalfAwayFromZero(dist.Rand()))

	returnEff := safeRatio(pkg.Defense.DB.Coverage, pkg.Offense.OL.RunBlock+1) // punt-team coverage vs return-team blocking
	returnYards := 0
	if !src.Chance(0.1) { // 10% fair catch / downed with no return
		returnYards = int(roundHalfAwayFromZero(clampFloat(returnEff*8, 0, 25)))
	}

	net := puntYards - returnYards
	if net < 0 {
		net = 0
	}

	if f.FieldPosition+net >= 100 {
		// Punt into or through the end zone: receiving team takes over
		// at the standard touchback spot rather than at the goal line.
		touchbackSpot := 100 - state.KickoffReturnPosition
		net = touchbackSpot - f.FieldPosition
		return state.PlayResult{
			PlayType: state.PlayPunt, Outcome: state.OutcomeTouchback,
			YardsGained: net, IsTurnover: true, StopsClock: false,
			Description: "punt into the end zone, touchback", PrimaryPlayer: "P",
		}
	}

	return state.PlayResult{
		PlayType: state.PlayPunt, Outcome: state.OutcomePuntDowned,
		YardsGained: net, IsTurnover: true, StopsClock: false,
		Description: "punt", PrimaryPlayer: "P",
	}
}

// ResolveKickoff resets possession to a returner position, producing a
// touchback with probability 0.65. touchbackPosition lets the
// safety-kick free kick (from the 20) share this logic with the
// standard post-score kickoff (from the 25).
func ResolveKickoff(pkg personnel.PersonnelPackage, touchbackPosition int, src *rng.Source) state.PlayResult {
	if src.Chance(0.65) {
		return state.PlayResult{
			PlayType: state.PlayKickoff, Outcome: state.OutcomeTouchback,
			YardsGained: touchbackPosition, Description: "touchback",
		}
	}
	returnYards := int(src.Uniform(15, 35))
	return state.PlayResult{
		PlayType: state.PlayKickoff, Outcome: state.OutcomeGain,
		YardsGained: returnYards, Description: "kickoff return",
	}
}
