package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/orchestrator"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
)

func balancedRatings(teamID string) personnel.TeamRatings {
	r := personnel.TeamRatings{TeamID: teamID}
	r.QB.Accuracy, r.QB.ArmStrength = 75, 75
	r.RB.Vision, r.RB.Power, r.RB.Speed = 75, 75, 75
	r.Carrying, r.Kicking, r.Punting = 80, 80, 75
	return r
}

func job(gameID string) Job {
	return Job{Input: orchestrator.GameInput{
		GameID: gameID,
		Home: orchestrator.TeamSetup{
			TeamID: "home", Ratings: balancedRatings("home"),
			OffenseArchetype: config.ArchetypeBalanced, DefenseArchetype: config.DefenseBalanced,
		},
		Away: orchestrator.TeamSetup{
			TeamID: "away", Ratings: balancedRatings("away"),
			OffenseArchetype: config.ArchetypeBalanced, DefenseArchetype: config.DefenseBalanced,
		},
		ReceivingTeamID: "away",
		RNGSeedSalt:     1,
	}}
}

func TestRun_CompletesEveryJob(t *testing.T) {
	cfg := config.DefaultConfig()
	runner := NewRunner(func() *orchestrator.Orchestrator {
		return orchestrator.New(cfg, NoopAuditManager(), 240)
	}, 4)

	jobs := []Job{job("game-1"), job("game-2"), job("game-3"), job("game-4"), job("game-5")}
	results := runner.Run(context.Background(), jobs)

	assert.Len(t, results, len(jobs))
	seen := map[string]bool{}
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.True(t, r.Final.Final)
		seen[r.GameID] = true
	}
	assert.Len(t, seen, len(jobs))
}

func TestNewRunner_DefaultsWorkersWhenNonPositive(t *testing.T) {
	cfg := config.DefaultConfig()
	runner := NewRunner(func() *orchestrator.Orchestrator {
		return orchestrator.New(cfg, NoopAuditManager(), 240)
	}, 0)
	assert.Greater(t, runner.workers, 0)
}

func TestNoopAuditManager_CommitsPlaysWithoutASink(t *testing.T) {
	mgr := NoopAuditManager()
	assert.NotNil(t, mgr)
}
