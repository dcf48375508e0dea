// Package transition implements C5, the set of pure state-transition
// calculators invoked by the game-state manager between a play's
// matchup resolution and its validated application: field position,
// possession, score, clock, and special situations (kickoffs, tries,
// safeties). Each calculator takes the pre-play state and the play
// result and returns a proposed post-play value; none of them mutate
// their inputs or touch the live GameState directly.
package transition

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

func clampPosition(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// rawAdvance computes the post-play field for a play the offense keeps
// the ball on: position moves by yards gained, down/distance reset on
// a first down or a score, otherwise the down increments and distance
// shrinks.
func rawAdvance(field state.FieldState, result state.PlayResult) state.FieldState {
	newPos := clampPosition(field.FieldPosition + result.YardsGained)

	if result.FirstDownAchieved || result.IsScore {
		return state.FieldState{
			FieldPosition:    newPos,
			Down:             1,
			YardsToGo:        state.GoalLineYardsToGo(newPos),
			PossessionTeamID: field.PossessionTeamID,
			DefensiveTeamID:  field.DefensiveTeamID,
		}
	}

	newYardsToGo := field.YardsToGo - result.YardsGained
	if newYardsToGo < 0 {
		newYardsToGo = 0
	}
	return state.FieldState{
		FieldPosition:    newPos,
		Down:             field.Down + 1,
		YardsToGo:        newYardsToGo,
		PossessionTeamID: field.PossessionTeamID,
		DefensiveTeamID:  field.DefensiveTeamID,
	}
}

// flip hands the ball to the defense at 100-spot (the mirror-image
// yard line from the new possessing team's perspective), 1st down with
// yards to go capped at the goal line rather than hardcoded to 10.
func flip(field state.FieldState, spot int) state.FieldState {
	newPos := clampPosition(100 - spot)
	return state.FieldState{
		FieldPosition:    newPos,
		Down:             1,
		YardsToGo:        state.GoalLineYardsToGo(newPos),
		PossessionTeamID: field.DefensiveTeamID,
		DefensiveTeamID:  field.PossessionTeamID,
	}
}

// turnoverSpot locates where a change-of-possession play ends, in the
// current (pre-flip) possessing team's frame, before flip() converts
// it to the new possessing team's frame.
func turnoverSpot(field state.FieldState, result state.PlayResult) int {
	switch result.PlayType {
	case state.PlayKickoff:
		// ResolveKickoff already reports an absolute spot in the
		// receiving team's own frame; no flip needed by the caller.
		return result.YardsGained
	case state.PlayPunt:
		return field.FieldPosition + result.YardsGained
	case state.PlayFieldGoal:
		// A missed kick is taken over at the spot of the snap; the
		// kick itself doesn't advance the ball for this purpose.
		return field.FieldPosition
	default:
		return clampPosition(field.FieldPosition + result.YardsGained)
	}
}

// ResolveField implements C5's field calculator: given whether
// possession changes (decided by ResolvePossession), produce the
// field the next play will be snapped from.
func ResolveField(field state.FieldState, result state.PlayResult, possessionFlips bool) state.FieldState {
	if !possessionFlips {
		return rawAdvance(field, result)
	}

	spot := turnoverSpot(field, result)
	if result.PlayType == state.PlayKickoff {
		newPos := clampPosition(spot)
		return state.FieldState{
			FieldPosition:    newPos,
			Down:             1,
			YardsToGo:        state.GoalLineYardsToGo(newPos),
			PossessionTeamID: field.DefensiveTeamID,
			DefensiveTeamID:  field.PossessionTeamID,
		}
	}
	return flip(field, spot)
}
