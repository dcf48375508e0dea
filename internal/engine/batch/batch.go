// Package batch runs many independent games concurrently, grounded on
// the optimization service's Monte Carlo simulator worker pool: a
// fixed-size pool of goroutines pulling work off a channel rather than
// one goroutine per game, so a batch of thousands of games doesn't
// spawn thousands of goroutines at once.
package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/stitts-dev/gridiron-sim/internal/engine/manager"
	"github.com/stitts-dev/gridiron-sim/internal/engine/orchestrator"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// Job is one game to simulate.
type Job struct {
	Input orchestrator.GameInput
}

// Result pairs a job's input with its outcome; Err is non-nil if the
// game's orchestration failed outright (distinct from a play failing
// validation, which the manager already recovers from internally).
type Result struct {
	GameID string
	Final  state.GameState
	Err    error
}

// Runner simulates a batch of games concurrently using a bounded
// worker pool. Each worker gets its own Orchestrator instance, and
// Simulate gives every game its own personnel.Selector, so no fatigue
// state is shared between games.
type Runner struct {
	newOrchestrator func() *orchestrator.Orchestrator
	workers         int
}

// NewRunner builds a Runner. newOrchestrator is called once per
// worker goroutine, not once per job, to avoid rebuilding a Manager
// and its dependencies thousands of times for a large batch; a fresh
// *orchestrator.Orchestrator is cheap, and each game it simulates
// starts with fresh fatigue state.
func NewRunner(newOrchestrator func() *orchestrator.Orchestrator, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{newOrchestrator: newOrchestrator, workers: workers}
}

// Run simulates every job and returns results in arbitrary order
// (callers that need game-id association should read Result.GameID).
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	jobChan := make(chan Job)
	resultChan := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			orch := r.newOrchestrator()
			for job := range jobChan {
				final, err := orch.Simulate(ctx, job.Input)
				resultChan <- Result{GameID: job.Input.GameID, Final: final, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case jobChan <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(jobs))
	for res := range resultChan {
		results = append(results, res)
	}
	return results
}

// NoopAuditManager is a convenience constructor for the common batch
// case: a Manager backed by a no-op audit sink, since a large batch
// run typically cares about final scores, not per-play persistence.
func NoopAuditManager() *manager.Manager {
	return manager.New(manager.NoopAuditSink{})
}
