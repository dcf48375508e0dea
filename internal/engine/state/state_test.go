package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalLineYardsToGo(t *testing.T) {
	assert.Equal(t, 10, GoalLineYardsToGo(50))
	assert.Equal(t, 5, GoalLineYardsToGo(95))
	assert.Equal(t, 1, GoalLineYardsToGo(99))
	assert.Equal(t, 10, GoalLineYardsToGo(90))
}

func TestClockHalf(t *testing.T) {
	c := NewClock("home", "away")
	assert.Equal(t, 1, c.Half())
	c.Quarter = 3
	assert.Equal(t, 2, c.Half())
	c.Quarter = OvertimeQuarter
	assert.Equal(t, 0, c.Half())
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	g := NewKickoffGameState("game-1", "home", "away", "away")
	snap := g.Snapshot()

	snap.Scoreboard["home"] = 99
	snap.Clock.TimeoutsRemaining["home"] = 0

	assert.Equal(t, 0, g.Scoreboard["home"])
	assert.Equal(t, 3, g.Clock.TimeoutsRemaining["home"])
}

func TestOpponentOf(t *testing.T) {
	g := NewKickoffGameState("game-1", "home", "away", "away")
	opp, err := g.OpponentOf("home")
	require.NoError(t, err)
	assert.Equal(t, "away", opp)

	_, err = g.OpponentOf("nobody")
	assert.Error(t, err)
}

func TestNewKickoffGameState(t *testing.T) {
	g := NewKickoffGameState("game-1", "home", "away", "away")
	assert.Equal(t, "away", g.Possession)
	assert.Equal(t, KickoffReturnPosition, g.Field.FieldPosition)
	assert.Equal(t, 1, g.Field.Down)
	assert.Equal(t, 10, g.Field.YardsToGo)
	assert.Equal(t, "home", g.Field.DefensiveTeamID)
}
