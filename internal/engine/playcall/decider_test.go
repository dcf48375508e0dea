package playcall

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/rng"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

func TestDecide_FourthAndLongAlwaysPunts(t *testing.T) {
	cfg := config.DefaultConfig()
	src := rng.New("game-1", 1, 0)
	ctx := Context{
		OffenseArchetype: config.ArchetypeBalanced,
		DefenseArchetype: config.DefenseBalanced,
		Field:            state.FieldState{FieldPosition: 40, Down: 4, YardsToGo: 12},
	}
	decision := Decide(cfg, ctx, src)
	assert.Equal(t, state.PlayPunt, decision.PlayType)
}

func TestDecide_FourthAndMediumInFieldGoalRangeKicks(t *testing.T) {
	cfg := config.DefaultConfig()
	src := rng.New("game-1", 1, 0)
	ctx := Context{
		OffenseArchetype: config.ArchetypeBalanced,
		DefenseArchetype: config.DefenseBalanced,
		Field:            state.FieldState{FieldPosition: 70, Down: 4, YardsToGo: 6},
	}
	decision := Decide(cfg, ctx, src)
	assert.Equal(t, state.PlayFieldGoal, decision.PlayType)
	assert.Equal(t, state.KickContextFieldGoal, decision.KickContext)
}

func TestDecide_FourthAndMediumOutOfRangePunts(t *testing.T) {
	cfg := config.DefaultConfig()
	src := rng.New("game-1", 1, 0)
	ctx := Context{
		OffenseArchetype: config.ArchetypeBalanced,
		DefenseArchetype: config.DefenseBalanced,
		Field:            state.FieldState{FieldPosition: 40, Down: 4, YardsToGo: 6},
	}
	decision := Decide(cfg, ctx, src)
	assert.Equal(t, state.PlayPunt, decision.PlayType)
}

func TestDecide_AggressiveArchetypeLowersGoForItThreshold(t *testing.T) {
	cfg := config.DefaultConfig()
	src := rng.New("game-1", 1, 0)
	ctx := Context{
		OffenseArchetype: config.ArchetypeAggressive,
		DefenseArchetype: config.DefenseBalanced,
		Field:            state.FieldState{FieldPosition: 60, Down: 4, YardsToGo: 4},
	}
	decision := Decide(cfg, ctx, src)
	assert.NotEqual(t, state.PlayFieldGoal, decision.PlayType)
	assert.NotEqual(t, state.PlayPunt, decision.PlayType)
}

func TestDecide_IsDeterministicGivenSameSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	ctx := Context{
		OffenseArchetype: config.ArchetypeBalanced,
		DefenseArchetype: config.DefenseBalanced,
		Field:            state.FieldState{FieldPosition: 50, Down: 1, YardsToGo: 10},
	}

	d1 := Decide(cfg, ctx, rng.New("game-x", 5, 99))
	d2 := Decide(cfg, ctx, rng.New("game-x", 5, 99))
	assert.Equal(t, d1, d2)
}

func TestWeightedSelect_PicksAnEntryOfTheDistribution(t *testing.T) {
	probs := config.PlayProbabilities{state.PlayRun: 0.5, state.PlayPass: 0.5}
	src := rng.New("game-1", 1, 0)
	_ = src // roll is not directly controllable
	result := weightedSelect(probs, rng.New("zero-roll-seed", 0, 0))
	assert.Contains(t, []state.PlayType{state.PlayRun, state.PlayPass}, result)
}

func TestRenormalize_ProbabilitiesSumToOne(t *testing.T) {
	probs := config.PlayProbabilities{state.PlayRun: 2.0, state.PlayPass: 2.0}
	renormalize(probs)
	total := probs[state.PlayRun] + probs[state.PlayPass]
	assert.InDelta(t, 1.0, total, 1e-9)
}
