package manager

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/engine/validate"
)

type recordingSink struct {
	mu      sync.Mutex
	calls   int
	lastVio []validate.Violation
}

func (r *recordingSink) RecordPlay(_ context.Context, _ string, _ int, _ state.PlayResult, violations []validate.Violation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastVio = violations
	return nil
}

func TestCommitPlay_CleanPlayCommitsDirectly(t *testing.T) {
	sink := &recordingSink{}
	m := New(sink)
	g := state.NewKickoffGameState("game-1", "home", "away", "away")

	result := state.PlayResult{PlayType: state.PlayRun, YardsGained: 6, TimeElapsedSeconds: 20}
	next, err := m.CommitPlay(context.Background(), g, result)

	require.NoError(t, err)
	assert.Equal(t, 2, next.PlayNumber)
	assert.Equal(t, 1, sink.calls)
	assert.Empty(t, sink.lastVio)
}

func TestCommitPlay_InvalidPlayFallsBackAndStillCommits(t *testing.T) {
	sink := &recordingSink{}
	m := New(sink)
	g := state.NewKickoffGameState("game-1", "home", "away", "away")

	// A sack so large it would leave yards-to-go above the goal-line
	// cap can't pass validation; the manager should substitute the
	// safe fallback and still commit.
	result := state.PlayResult{
		PlayType:           state.PlayRun,
		Outcome:            state.OutcomeSack,
		YardsGained:        -60,
		TimeElapsedSeconds: 20,
	}
	next, err := m.CommitPlay(context.Background(), g, result)

	require.NoError(t, err)
	assert.Equal(t, 2, next.PlayNumber)
	assert.NotEmpty(t, sink.lastVio)
}

func TestNew_NilSinkDoesNotPanic(t *testing.T) {
	m := New(nil)
	g := state.NewKickoffGameState("game-1", "home", "away", "away")
	result := state.PlayResult{PlayType: state.PlayRun, YardsGained: 3, TimeElapsedSeconds: 20}

	_, err := m.CommitPlay(context.Background(), g, result)
	assert.NoError(t, err)
}
