package transition

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

// Transition is the full proposed post-play state, as produced by
// Calculate and consumed by the validator and applicator. It never
// mutates the GameState passed into Calculate.
type Transition struct {
	Field           state.FieldState
	PossessionFlips bool
	NewPossession   string
	ScoreDelta      map[string]int
	Clock           state.Clock
	Special         SpecialSituations
	Result          state.PlayResult
}

// Calculate runs the five C5 calculators in a fixed order: possession
// first, since the field calculator needs to know whether the ball
// changes hands, then field, score, clock and special situations.
// Each calculator only reads g and result;
// none of them has side effects.
func Calculate(g state.GameState, result state.PlayResult) Transition {
	possessionFlips := ResolvePossession(g.Field, result)
	field := ResolveField(g.Field, result, possessionFlips)

	newPossession := g.Possession
	if possessionFlips {
		newPossession = field.PossessionTeamID
	}

	return Transition{
		Field:           field,
		PossessionFlips: possessionFlips,
		NewPossession:   newPossession,
		ScoreDelta:      ResolveScore(g.Field, result),
		Clock:           ResolveClock(g.Clock, result),
		Special:         Resolve(result),
		Result:          result,
	}
}
