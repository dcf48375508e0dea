package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

func TestSummaryFromGameState_ProjectsPlayCountFromPlayNumber(t *testing.T) {
	g := state.NewKickoffGameState("game-1", "home", "away", "away")
	g.PlayNumber = 42
	g.Final = true

	summary := SummaryFromGameState(g)
	assert.Equal(t, "game-1", summary.GameID)
	assert.Equal(t, 41, summary.PlayCount)
	assert.True(t, summary.Final)
}

func TestNew_RejectsInvalidRedisURL(t *testing.T) {
	_, err := New("not-a-valid-url://###", nil)
	assert.Error(t, err)
}
