package transition

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

const (
	standardKickoffSpot = state.KickoffReturnPosition
	safetyFreeKickSpot  = 20
)

// SpecialSituations is C5's fifth calculator: it tracks the two
// scripted plays the orchestrator must force ahead of a normal
// down-and-distance snap — the try after a touchdown, and the kickoff
// after any score (or the free kick after a safety) — rather than
// leaving them to the play-call decider's weighted selection.
type SpecialSituations struct {
	PendingTry         bool
	PendingKickoff     bool
	PendingKickoffSpot int
}

// Resolve computes the next pending-special-play state given the play
// just resolved.
func Resolve(result state.PlayResult) SpecialSituations {
	switch {
	case result.Outcome == state.OutcomeTouchdown:
		return SpecialSituations{PendingTry: true}

	case result.Outcome == state.OutcomeExtraPointGood, result.Outcome == state.OutcomeExtraPointMissed,
		result.Outcome == state.OutcomeTwoPointGood, result.Outcome == state.OutcomeTwoPointFailed:
		return SpecialSituations{PendingKickoff: true, PendingKickoffSpot: standardKickoffSpot}

	case result.Outcome == state.OutcomeFieldGoalGood:
		return SpecialSituations{PendingKickoff: true, PendingKickoffSpot: standardKickoffSpot}

	case result.Outcome == state.OutcomeSafety:
		return SpecialSituations{PendingKickoff: true, PendingKickoffSpot: safetyFreeKickSpot}

	case result.PlayType == state.PlayKickoff:
		return SpecialSituations{}

	default:
		return SpecialSituations{}
	}
}
