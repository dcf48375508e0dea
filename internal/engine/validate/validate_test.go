package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/engine/transition"
)

func gameWithPossession() state.GameState {
	g := state.NewKickoffGameState("game-1", "home", "away", "away")
	return g
}

func hasCode(violations []Violation, code string) bool {
	for _, v := range violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func TestValidate_CleanTransitionHasNoViolations(t *testing.T) {
	g := gameWithPossession()
	result := state.PlayResult{PlayType: state.PlayRun, YardsGained: 5, TimeElapsedSeconds: 30}
	tr := transition.Calculate(g, result)
	assert.Empty(t, Validate(g, tr))
}

func TestValidate_FieldPositionOutOfRange(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayRun, YardsGained: 5, TimeElapsedSeconds: 10})
	tr.Field.FieldPosition = 140

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "FIELD.001"))
}

func TestValidate_YardsToGoExceedsGoalLineCap(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayRun, YardsGained: 5, TimeElapsedSeconds: 10})
	tr.Field.FieldPosition = 97
	tr.Field.YardsToGo = 10

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "FIELD.004"))
}

func TestValidate_DownOutOfRange(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayRun, YardsGained: 1, TimeElapsedSeconds: 10})
	tr.Field.Down = 5

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "DOWN.001"))
}

func TestValidate_FirstDownMustResetDownCounter(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayRun, YardsGained: 12, FirstDownAchieved: true, TimeElapsedSeconds: 10})
	tr.Field.Down = 2

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "DOWN.005"))
}

func TestValidate_PossessionMustBeAScoreboardParticipant(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayPunt, YardsGained: 40, IsTurnover: true, TimeElapsedSeconds: 10})
	tr.NewPossession = "nobody"

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "POSS.001"))
}

func TestValidate_NegativeScoreDelta(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayRun, YardsGained: 1, TimeElapsedSeconds: 10})
	tr.ScoreDelta = map[string]int{"home": -6}

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "SCORE.001"))
}

func TestValidate_ClockOutOfRange(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayRun, YardsGained: 1, TimeElapsedSeconds: 10})
	tr.Clock.SecondsRemaining = -5

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "CLOCK.001"))
}

func TestValidate_PossessionFlipMustActuallyChangePossession(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayPunt, YardsGained: 40, IsTurnover: true, TimeElapsedSeconds: 10})
	tr.PossessionFlips = true
	tr.NewPossession = g.Possession

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "CROSS.004"))
}

func TestValidate_PendingTryCannotCoincideWithPossessionFlip(t *testing.T) {
	g := gameWithPossession()
	tr := transition.Calculate(g, state.PlayResult{PlayType: state.PlayRun, YardsGained: 1, Outcome: state.OutcomeTouchdown, IsScore: true, PointsScored: 6, TimeElapsedSeconds: 10})
	tr.PossessionFlips = true
	tr.NewPossession = "away"

	violations := Validate(g, tr)
	assert.True(t, hasCode(violations, "CROSS.005"))
}
