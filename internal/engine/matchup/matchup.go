package matchup

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/rng"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// Resolve is the matchup engine's single entry point: it dispatches to
// the run, pass, or kick sub-resolvers based on playType and, for
// kicks, the explicit KickContext tag rather than inferring
// field-goal-vs-extra-point from field position.
func Resolve(cfg *config.Config, pkg personnel.PersonnelPackage, playType state.PlayType, kickCtx state.KickContext, defArchetype config.DefenseArchetype, sit config.Situation, f state.FieldState, src *rng.Source) state.PlayResult {
	switch playType {
	case state.PlayRun:
		return ResolveRun(cfg, pkg, sit, f, src)
	case state.PlayPass:
		return ResolvePass(cfg, pkg, defArchetype, sit, f, src)
	case state.PlayFieldGoal:
		return ResolveFieldGoal(pkg, f, src)
	case state.PlayExtraPoint:
		return ResolveExtraPoint(src)
	case state.PlayTwoPoint:
		return resolveTwoPointAttempt(cfg, pkg, sit, src)
	case state.PlayPunt:
		return ResolvePunt(pkg, f, src)
	case state.PlayKickoff:
		return ResolveKickoff(pkg, state.KickoffReturnPosition, src)
	case state.PlayKneel:
		return resolveKneel()
	case state.PlaySpike:
		return resolveSpike()
	default:
		// Unknown play type: never fail, resolve it as an ordinary run
		// rather than panic.
		return ResolveRun(cfg, pkg, sit, f, src)
	}
}

// resolveTwoPointAttempt runs a two-point conversion as a short power
// run, the league-standard 2-point call, from the 2-yard line.
func resolveTwoPointAttempt(cfg *config.Config, pkg personnel.PersonnelPackage, sit config.Situation, src *rng.Source) state.PlayResult {
	twoPt := TwoPointFieldState(pkg.Offense.TeamID, pkg.Defense.TeamID)
	inner := ResolveRun(cfg, pkg, config.SituationGoalToGo, twoPt, src)
	return ResolveTwoPoint(inner)
}

func resolveKneel() state.PlayResult {
	return state.PlayResult{
		PlayType: state.PlayKneel, Outcome: state.OutcomeKneel,
		YardsGained: -1, Description: "kneel down",
	}
}

func resolveSpike() state.PlayResult {
	return state.PlayResult{
		PlayType: state.PlaySpike, Outcome: state.OutcomeIncompletion,
		YardsGained: 0, StopsClock: true, Description: "spike",
	}
}

// SafetyKickTouchbackPosition is the free-kick touchback spot after a
// safety.
const SafetyKickTouchbackPosition = 20
