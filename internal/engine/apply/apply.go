// Package apply implements C7, the Transition Applicator: it commits
// an already-validated transition.Transition to a GameState in a
// fixed order (field, possession, score, clock, special situations)
// and rolls back atomically to the pre-play snapshot if anything about
// the result it's about to commit doesn't hold up.
package apply

import (
	"fmt"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/engine/transition"
)

// Apply commits t on top of current and returns the resulting state.
// On failure it returns the untouched pre-play snapshot alongside the
// error, so a caller can retry or surface the failure without ever
// observing a half-applied game.
func Apply(current state.GameState, t transition.Transition) (state.GameState, error) {
	snapshot := current.Snapshot()
	next := current.Snapshot()

	next.Field = t.Field
	next.Possession = t.NewPossession

	for teamID, delta := range t.ScoreDelta {
		next.Scoreboard[teamID] += delta
	}

	next.Clock = t.Clock

	next.PendingTry = t.Special.PendingTry
	next.PendingKickoff = t.Special.PendingKickoff
	next.PendingKickoffSpot = t.Special.PendingKickoffSpot

	next.PlayNumber = current.PlayNumber + 1

	if err := sanityCheck(next); err != nil {
		return snapshot, err
	}
	return next, nil
}

// sanityCheck is the applicator's own last line of defense, run after
// commit and before the new state is handed back. The manager already
// ran the full validator before calling Apply; this only guards
// against the commit step itself having gone wrong (e.g. a scoreboard
// going negative), which the validator never inspects because it
// looks at deltas, not post-commit totals.
func sanityCheck(g state.GameState) error {
	if g.Field.FieldPosition < 0 || g.Field.FieldPosition > 100 {
		return fmt.Errorf("apply: field position %d out of range after commit", g.Field.FieldPosition)
	}
	for teamID, points := range g.Scoreboard {
		if points < 0 {
			return fmt.Errorf("apply: team %q scoreboard went negative after commit", teamID)
		}
	}
	if g.Clock.SecondsRemaining < 0 {
		return fmt.Errorf("apply: clock went negative after commit")
	}
	return nil
}
