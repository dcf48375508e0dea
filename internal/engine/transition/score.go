package transition

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

// ResolveScore returns the per-team point delta a play produces. A
// safety is credited to the defense; every other scoring outcome is
// credited to the team that had possession, using the point value the
// matchup engine already attached to the result.
func ResolveScore(field state.FieldState, result state.PlayResult) map[string]int {
	delta := map[string]int{}

	if result.Outcome == state.OutcomeSafety {
		delta[field.DefensiveTeamID] = 2
		return delta
	}
	if result.IsScore && result.PointsScored > 0 {
		delta[field.PossessionTeamID] = result.PointsScored
	}
	return delta
}
