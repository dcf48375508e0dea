// Package state defines the core data model of one in-progress game:
// GameState and its sub-states (FieldState, Clock), plus the handful of
// pure helpers (goal-line yards-to-go, quarter rollover) that every
// calculator in internal/engine/transition depends on so the rule is
// expressed exactly once.
package state

import "fmt"

// KickoffReturnPosition is the default field position a receiving team
// starts from after any kickoff.
const KickoffReturnPosition = 25

// SecondsPerQuarter is the per-quarter clock length.
const SecondsPerQuarter = 900

// FieldState is the possession-relative description of where the ball
// is and what's needed for a first down.
type FieldState struct {
	// FieldPosition is 0-100: 100 is the possessing team's opponent end zone.
	FieldPosition int
	Down          int
	YardsToGo     int

	PossessionTeamID string
	DefensiveTeamID  string
}

// DistanceToGoal returns how many yards separate the possessing team
// from the end zone it is driving toward.
func (f FieldState) DistanceToGoal() int {
	return 100 - f.FieldPosition
}

// GoalLineYardsToGo is the single place "1st and Goal at X" gets
// computed: never hardcode 10 yards to go, always pass the post-play
// field position through this helper so every caller agrees on the
// goal-line cap.
func GoalLineYardsToGo(newFieldPosition int) int {
	toGoal := 100 - newFieldPosition
	if toGoal < 10 {
		return toGoal
	}
	return 10
}

// Clock is the game clock: quarter, seconds remaining in the quarter,
// and the per-half bookkeeping (two-minute warning, timeouts) the clock
// calculator and strategy layer consult.
type Clock struct {
	Quarter          int // 1-4, 5 denotes overtime
	SecondsRemaining int // 0-900

	TwoMinuteWarningConsumed map[int]bool // keyed by half (1 or 2)
	TimeoutsRemaining        map[string]int
}

const OvertimeQuarter = 5

// Half returns 1 or 2 for regulation quarters, 0 during overtime (no
// two-minute warning in the sudden-death overtime this repo implements).
func (c Clock) Half() int {
	switch {
	case c.Quarter <= 2:
		return 1
	case c.Quarter <= 4:
		return 2
	default:
		return 0
	}
}

// NewClock builds the opening-kickoff clock: quarter 1, a full quarter
// of seconds, three timeouts per half for both teams.
func NewClock(homeTeamID, awayTeamID string) Clock {
	return Clock{
		Quarter:          1,
		SecondsRemaining: SecondsPerQuarter,
		TwoMinuteWarningConsumed: map[int]bool{
			1: false,
			2: false,
		},
		TimeoutsRemaining: map[string]int{
			homeTeamID: 3,
			awayTeamID: 3,
		},
	}
}

// GameState is the aggregate state of one in-progress game. Each play
// is committed by internal/engine/apply.Apply; the orchestrator also
// sets the opening-kickoff and end-of-game fields on its own copy.
// Everything else in the engine reads it by value (for snapshotting) or
// by pointer (for read-only inspection).
type GameState struct {
	GameID string

	Field      FieldState
	Clock      Clock
	Scoreboard map[string]int // team id -> points

	Possession string // team id currently with the ball

	// PlayNumber is the 1-based index of the next play to be resolved;
	// it is also the component fed into the PRNG seed derivation, so a
	// replay with the same game ID and play number reproduces the same
	// draws.
	PlayNumber int

	// PendingKickoff is set by the special-situations calculator after
	// any score and cleared once the kickoff-reset transition has been
	// applied.
	PendingKickoff bool

	// PendingKickoffSpot is the touchback/free-kick origin the next
	// kickoff should use: the standard 25 after a touchdown or field
	// goal, or the free-kick 20 after a safety.
	PendingKickoffSpot int

	// PendingTry is set after a touchdown: the next play must be an
	// extra-point or two-point attempt by the scoring team before any
	// kickoff, not a normal scrimmage down.
	PendingTry bool

	// Final is set by the orchestrator once a terminal condition has
	// been reached. No further plays are processed afterward.
	Final bool
}

// Snapshot returns a deep-enough copy of the state for the applicator's
// rollback semantics. GameState itself holds only value types and
// maps; maps are copied explicitly since Go map assignment aliases the
// underlying storage.
func (g GameState) Snapshot() GameState {
	clone := g
	clone.Scoreboard = make(map[string]int, len(g.Scoreboard))
	for k, v := range g.Scoreboard {
		clone.Scoreboard[k] = v
	}
	clone.Clock.TwoMinuteWarningConsumed = make(map[int]bool, len(g.Clock.TwoMinuteWarningConsumed))
	for k, v := range g.Clock.TwoMinuteWarningConsumed {
		clone.Clock.TwoMinuteWarningConsumed[k] = v
	}
	clone.Clock.TimeoutsRemaining = make(map[string]int, len(g.Clock.TimeoutsRemaining))
	for k, v := range g.Clock.TimeoutsRemaining {
		clone.Clock.TimeoutsRemaining[k] = v
	}
	return clone
}

// OpponentOf returns the other team in a two-team game's scoreboard.
func (g GameState) OpponentOf(teamID string) (string, error) {
	for id := range g.Scoreboard {
		if id != teamID {
			return id, nil
		}
	}
	return "", fmt.Errorf("no opponent found for team %q in scoreboard", teamID)
}

// NewKickoffGameState starts a game at the standard kickoff: receiving
// team at the 25 (touchback-equivalent opening spot), 1st and 10,
// quarter 1, full clock, 0-0.
func NewKickoffGameState(gameID, homeTeamID, awayTeamID, receivingTeamID string) GameState {
	kickingTeamID := homeTeamID
	if receivingTeamID == homeTeamID {
		kickingTeamID = awayTeamID
	}
	return GameState{
		GameID: gameID,
		Field: FieldState{
			FieldPosition:    KickoffReturnPosition,
			Down:             1,
			YardsToGo:        10,
			PossessionTeamID: receivingTeamID,
			DefensiveTeamID:  kickingTeamID,
		},
		Clock: NewClock(homeTeamID, awayTeamID),
		Scoreboard: map[string]int{
			homeTeamID: 0,
			awayTeamID: 0,
		},
		Possession: receivingTeamID,
		PlayNumber: 1,
	}
}
