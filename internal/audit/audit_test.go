package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/engine/validate"
)

func TestInMemorySink_RecordsPlaysInCommitOrder(t *testing.T) {
	sink := NewInMemorySink()
	ctx := context.Background()

	require.NoError(t, sink.RecordPlay(ctx, "game-1", 1, state.PlayResult{PlayType: state.PlayRun, YardsGained: 4}, nil))
	require.NoError(t, sink.RecordPlay(ctx, "game-1", 2, state.PlayResult{PlayType: state.PlayPass, YardsGained: 12}, nil))

	plays := sink.PlaysFor("game-1")
	require.Len(t, plays, 2)
	assert.Equal(t, 1, plays[0].PlayNumber)
	assert.Equal(t, "pass", plays[1].PlayType)
}

func TestInMemorySink_SerializesViolations(t *testing.T) {
	sink := NewInMemorySink()
	ctx := context.Background()
	violations := []validate.Violation{{Code: "FIELD.001", Message: "out of range"}}

	require.NoError(t, sink.RecordPlay(ctx, "game-1", 1, state.PlayResult{PlayType: state.PlayRun}, violations))
	plays := sink.PlaysFor("game-1")
	require.Len(t, plays, 1)
	assert.Contains(t, plays[0].Violations, "FIELD.001")
}

func TestInMemorySink_UnknownGameReturnsEmptySlice(t *testing.T) {
	sink := NewInMemorySink()
	assert.Empty(t, sink.PlaysFor("nonexistent"))
}

func TestInMemorySink_KeepsGamesSeparate(t *testing.T) {
	sink := NewInMemorySink()
	ctx := context.Background()
	require.NoError(t, sink.RecordPlay(ctx, "game-1", 1, state.PlayResult{PlayType: state.PlayRun}, nil))
	require.NoError(t, sink.RecordPlay(ctx, "game-2", 1, state.PlayResult{PlayType: state.PlayPass}, nil))

	assert.Len(t, sink.PlaysFor("game-1"), 1)
	assert.Len(t, sink.PlaysFor("game-2"), 1)
}
