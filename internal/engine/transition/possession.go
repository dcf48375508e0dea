package transition

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

// ResolvePossession decides whether the ball changes hands: an
// explicit live-ball turnover the matchup engine already flagged
// (interception, fumble lost, blocked/downed punt, missed field
// goal), any kickoff (kickoffs always change hands by definition), or
// a failed fourth-down try that the matchup engine has no visibility
// into (it only sees the field state it was handed, not what happens
// if the attempt comes up short).
func ResolvePossession(field state.FieldState, result state.PlayResult) bool {
	if result.IsTurnover {
		return true
	}
	if result.PlayType == state.PlayKickoff {
		return true
	}
	if field.Down >= 4 && !result.FirstDownAchieved && !result.IsScore &&
		result.PlayType != state.PlayFieldGoal &&
		result.PlayType != state.PlayPunt {
		return true
	}
	return false
}
