// Package validate implements C6, the Transition Validator: a set of
// read-only checks run against a proposed transition before the
// applicator is allowed to commit it. A validator never mutates
// either the current GameState or the Transition; it only inspects
// them and reports violations by rule code.
package validate

import (
	"fmt"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/engine/transition"
)

// Violation is one failed rule, identified by a stable code so
// callers (and audit logs) can key off it rather than parsing
// messages.
type Violation struct {
	Code    string
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Code, v.Message)
}

// Validate runs every rule against the proposed transition and
// returns every violation found (nil if the transition is clean).
func Validate(g state.GameState, t transition.Transition) []Violation {
	var violations []Violation

	violations = append(violations, fieldRules(t)...)
	violations = append(violations, downRules(g, t)...)
	violations = append(violations, possessionRules(g, t)...)
	violations = append(violations, scoreRules(t)...)
	violations = append(violations, clockRules(t)...)
	violations = append(violations, crossFieldRules(g, t)...)

	return violations
}

// fieldRules: FIELD.001 field position must stay on the field;
// FIELD.004 yards-to-go must respect the goal-line cap.
func fieldRules(t transition.Transition) []Violation {
	var v []Violation
	if t.Field.FieldPosition < 0 || t.Field.FieldPosition > 100 {
		v = append(v, Violation{"FIELD.001", fmt.Sprintf("field position %d out of [0,100]", t.Field.FieldPosition)})
	}
	maxYardsToGo := state.GoalLineYardsToGo(t.Field.FieldPosition)
	if t.Field.YardsToGo < 0 || t.Field.YardsToGo > maxYardsToGo {
		v = append(v, Violation{"FIELD.004", fmt.Sprintf("yards to go %d exceeds goal-line cap %d at field position %d", t.Field.YardsToGo, maxYardsToGo, t.Field.FieldPosition)})
	}
	return v
}

// downRules: DOWN.001 down must be 1-4; DOWN.005 a first down or
// possession change must reset the down counter to 1.
func downRules(g state.GameState, t transition.Transition) []Violation {
	var v []Violation
	if t.Field.Down < 1 || t.Field.Down > 4 {
		v = append(v, Violation{"DOWN.001", fmt.Sprintf("down %d out of [1,4]", t.Field.Down)})
	}
	if (t.Result.FirstDownAchieved || t.PossessionFlips) && t.Field.Down != 1 {
		v = append(v, Violation{"DOWN.005", fmt.Sprintf("down %d should have reset to 1 after first down or possession change", t.Field.Down)})
	}
	return v
}

// possessionRules: POSS.001 the new possession must be one of the two
// teams already on the scoreboard.
func possessionRules(g state.GameState, t transition.Transition) []Violation {
	var v []Violation
	if _, ok := g.Scoreboard[t.NewPossession]; !ok {
		v = append(v, Violation{"POSS.001", fmt.Sprintf("possession team %q is not a participant in this game", t.NewPossession)})
	}
	return v
}

// scoreRules: SCORE.001 no team's score delta may be negative.
func scoreRules(t transition.Transition) []Violation {
	var v []Violation
	for teamID, delta := range t.ScoreDelta {
		if delta < 0 {
			v = append(v, Violation{"SCORE.001", fmt.Sprintf("negative score delta %d for team %q", delta, teamID)})
		}
	}
	return v
}

// clockRules: CLOCK.001 the clock must stay within its legal ranges.
func clockRules(t transition.Transition) []Violation {
	var v []Violation
	if t.Clock.SecondsRemaining < 0 || t.Clock.SecondsRemaining > state.SecondsPerQuarter {
		v = append(v, Violation{"CLOCK.001", fmt.Sprintf("seconds remaining %d out of [0,%d]", t.Clock.SecondsRemaining, state.SecondsPerQuarter)})
	}
	if t.Clock.Quarter < 1 || t.Clock.Quarter > state.OvertimeQuarter {
		v = append(v, Violation{"CLOCK.001", fmt.Sprintf("quarter %d out of [1,%d]", t.Clock.Quarter, state.OvertimeQuarter)})
	}
	return v
}

// crossFieldRules: invariants that span more than one sub-state.
// CROSS.004: a possession flip must actually change who has the ball.
// CROSS.005: a pending try keeps the ball with the team that just
// scored; it cannot simultaneously be flagged as a possession change.
func crossFieldRules(g state.GameState, t transition.Transition) []Violation {
	var v []Violation
	if t.PossessionFlips && t.NewPossession == g.Possession {
		v = append(v, Violation{"CROSS.004", "possession flip flagged but new possession equals prior possession"})
	}
	if t.Special.PendingTry && t.PossessionFlips {
		v = append(v, Violation{"CROSS.005", "pending try cannot coincide with a possession flip"})
	}
	return v
}
