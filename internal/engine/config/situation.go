package config

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

// Situation is the down-and-distance-and-field-position classification
// the play call decider keys its base probability lookup on.
type Situation string

const (
	SituationFirstAndTen  Situation = "1st_and_10"
	SituationSecondShort  Situation = "2nd_short"
	SituationSecondMedium Situation = "2nd_medium"
	SituationSecondLong   Situation = "2nd_long"
	SituationThirdShort   Situation = "3rd_short"
	SituationThirdMedium  Situation = "3rd_medium"
	SituationThirdLong    Situation = "3rd_long"
	SituationFourthShort  Situation = "4th_short"
	SituationFourthMedium Situation = "4th_medium"
	SituationFourthLong   Situation = "4th_long"
	SituationGoalToGo     Situation = "goal_to_go"
	SituationRedZone      Situation = "red_zone"
)

// ClassifySituation buckets a field state for base-probability lookup.
// Goal-to-go and red zone are evaluated ahead of the down/distance
// buckets: a 2nd-and-8 snap from the opponent 8 is goal-to-go, not
// "2nd_long".
func ClassifySituation(f state.FieldState) Situation {
	if f.YardsToGo >= f.DistanceToGoal() && f.DistanceToGoal() <= 10 {
		return SituationGoalToGo
	}
	if f.FieldPosition >= 80 {
		return SituationRedZone
	}

	switch f.Down {
	case 1:
		return SituationFirstAndTen
	case 2:
		switch {
		case f.YardsToGo <= 3:
			return SituationSecondShort
		case f.YardsToGo <= 7:
			return SituationSecondMedium
		default:
			return SituationSecondLong
		}
	case 3:
		switch {
		case f.YardsToGo <= 3:
			return SituationThirdShort
		case f.YardsToGo <= 7:
			return SituationThirdMedium
		default:
			return SituationThirdLong
		}
	case 4:
		switch {
		case f.YardsToGo <= 3:
			return SituationFourthShort
		case f.YardsToGo <= 7:
			return SituationFourthMedium
		default:
			return SituationFourthLong
		}
	default:
		// Unreachable under the down invariant (1-4); fall back to the
		// 1st_and_10 base rather than erroring.
		return SituationFirstAndTen
	}
}
