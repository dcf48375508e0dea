package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/manager"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

func balancedRatings(teamID string) personnel.TeamRatings {
	r := personnel.TeamRatings{TeamID: teamID}
	r.QB.Accuracy, r.QB.ArmStrength = 75, 75
	r.WR.Route, r.WR.Catching = 75, 75
	r.OL.PassBlock, r.OL.RunBlock = 75, 75
	r.RB.Vision, r.RB.Power, r.RB.Speed, r.RB.PassPro = 75, 75, 75, 70
	r.DL.PassRush, r.DL.RunDef = 75, 75
	r.LB.Coverage, r.LB.RunDef = 75, 75
	r.DB.Coverage, r.DB.Press, r.DB.BallSkills = 75, 75, 75
	r.Carrying, r.Kicking, r.Punting = 80, 80, 75
	return r
}

func testInput(gameID string, salt int64) GameInput {
	return GameInput{
		GameID: gameID,
		Home: TeamSetup{
			TeamID:           "home",
			Ratings:          balancedRatings("home"),
			OffenseArchetype: config.ArchetypeBalanced,
			DefenseArchetype: config.DefenseBalanced,
		},
		Away: TeamSetup{
			TeamID:           "away",
			Ratings:          balancedRatings("away"),
			OffenseArchetype: config.ArchetypeBalanced,
			DefenseArchetype: config.DefenseBalanced,
		},
		ReceivingTeamID: "away",
		RNGSeedSalt:     42,
	}
}

func TestSimulate_ReachesTerminalState(t *testing.T) {
	mgr := manager.New(manager.NoopAuditSink{})
	orch := New(config.DefaultConfig(), mgr, 240)

	final, err := orch.Simulate(context.Background(), testInput("game-1", 42))
	require.NoError(t, err)
	assert.True(t, final.Final)
	assert.Len(t, final.Scoreboard, 2)
}

func TestSimulate_IsDeterministicGivenSameSeed(t *testing.T) {
	mgr1 := manager.New(manager.NoopAuditSink{})
	orch1 := New(config.DefaultConfig(), mgr1, 240)
	final1, err := orch1.Simulate(context.Background(), testInput("game-det", 7))
	require.NoError(t, err)

	mgr2 := manager.New(manager.NoopAuditSink{})
	orch2 := New(config.DefaultConfig(), mgr2, 240)
	final2, err := orch2.Simulate(context.Background(), testInput("game-det", 7))
	require.NoError(t, err)

	assert.Equal(t, final1.Scoreboard, final2.Scoreboard)
	assert.Equal(t, final1.PlayNumber, final2.PlayNumber)
}

func TestSimulate_RespectsMaxPlaysPerGame(t *testing.T) {
	mgr := manager.New(manager.NoopAuditSink{})
	orch := New(config.DefaultConfig(), mgr, 3)

	final, err := orch.Simulate(context.Background(), testInput("game-short", 1))
	require.NoError(t, err)
	assert.True(t, final.Final)
	assert.LessOrEqual(t, final.PlayNumber, 5)
}

func TestSimulate_OnPlayFiresOncePerCommittedPlay(t *testing.T) {
	mgr := manager.New(manager.NoopAuditSink{})
	orch := New(config.DefaultConfig(), mgr, 10)

	input := testInput("game-onplay", 7)
	var calls int
	input.OnPlay = func(g state.GameState, result state.PlayResult) {
		calls++
		assert.NotEmpty(t, result.PlayType)
	}

	final, err := orch.Simulate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, final.PlayNumber-1, calls)
}

func TestDecideTry_AggressiveArchetypeGoesForTwo(t *testing.T) {
	g := state.NewKickoffGameState("game-1", "home", "away", "away")
	playType, kickCtx := decideTry(config.ArchetypeAggressive, g, "home", "away")
	assert.Equal(t, state.PlayTwoPoint, playType)
	assert.Equal(t, state.KickContextTwoPoint, kickCtx)
}

func TestDecideTry_BalancedArchetypeKicksExtraPoint(t *testing.T) {
	g := state.NewKickoffGameState("game-1", "home", "away", "away")
	playType, kickCtx := decideTry(config.ArchetypeBalanced, g, "home", "away")
	assert.Equal(t, state.PlayExtraPoint, playType)
	assert.Equal(t, state.KickContextExtraPoint, kickCtx)
}

func TestIsNoHuddle_TrailingLateInFourthQuarter(t *testing.T) {
	g := state.NewKickoffGameState("game-1", "home", "away", "away")
	g.Clock.Quarter = 4
	g.Clock.SecondsRemaining = 90
	g.Scoreboard[g.Field.PossessionTeamID] = 0
	g.Scoreboard[g.Field.DefensiveTeamID] = 7

	assert.True(t, isNoHuddle(config.ArchetypeBalanced, g))
}

func TestIsNoHuddle_LeadingNeverTriggers(t *testing.T) {
	g := state.NewKickoffGameState("game-1", "home", "away", "away")
	g.Clock.Quarter = 4
	g.Clock.SecondsRemaining = 60
	g.Scoreboard[g.Field.PossessionTeamID] = 14

	assert.False(t, isNoHuddle(config.ArchetypeBalanced, g))
}
