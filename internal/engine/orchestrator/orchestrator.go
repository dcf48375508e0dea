// Package orchestrator implements C9, the Game Orchestrator: the
// top-level per-play loop that drives a game from opening kickoff to
// a terminal condition, forcing the scripted plays (tries, kickoffs)
// ahead of normal play-calling and handing every other down to C1-C4.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/stitts-dev/gridiron-sim/internal/engine/clockstrategy"
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/manager"
	"github.com/stitts-dev/gridiron-sim/internal/engine/matchup"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/playcall"
	"github.com/stitts-dev/gridiron-sim/internal/engine/rng"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// TeamSetup is everything the orchestrator needs to represent one side
// for the length of a game.
type TeamSetup struct {
	TeamID           string
	Ratings          personnel.TeamRatings
	OffenseArchetype config.OffenseArchetype
	DefenseArchetype config.DefenseArchetype
}

// GameInput is the orchestrator's entry point payload: the two teams
// and the identifiers needed to seed the game deterministically.
type GameInput struct {
	GameID          string
	Home            TeamSetup
	Away            TeamSetup
	ReceivingTeamID string // which team receives the opening kickoff
	RNGSeedSalt     int64

	// OnPlay, when set, is invoked with the post-commit game state and
	// the play that was just committed, right after each play commits.
	// StartGame uses this to stream plays to wsgame.Hub as the game
	// progresses rather than only after the whole game has resolved.
	OnPlay func(state.GameState, state.PlayResult)
}

// Orchestrator wires C1-C8 into the play-by-play loop.
type Orchestrator struct {
	cfg      *config.Config
	mgr      *manager.Manager
	selector *personnel.Selector

	maxPlaysPerGame int
}

// New builds an Orchestrator. maxPlaysPerGame is the runaway-loop
// guard: a game that somehow never reaches a terminal condition (a
// configuration bug in the balance table, for instance) is forced
// final once it's simulated that many plays.
func New(cfg *config.Config, mgr *manager.Manager, maxPlaysPerGame int) *Orchestrator {
	if maxPlaysPerGame <= 0 {
		maxPlaysPerGame = 240
	}
	return &Orchestrator{
		cfg:             cfg,
		mgr:             mgr,
		selector:        personnel.NewSelector(),
		maxPlaysPerGame: maxPlaysPerGame,
	}
}

// Simulate runs one game to completion and returns its final state.
func (o *Orchestrator) Simulate(ctx context.Context, input GameInput) (state.GameState, error) {
	// Fatigue is per game: every run gets its own Selector, whether games
	// on one Orchestrator run one after another or concurrently.
	run := *o
	run.selector = personnel.NewSelector()
	o = &run

	receiving := input.ReceivingTeamID
	if receiving == "" {
		receiving = input.Away.TeamID
	}
	// The kicking team holds the ball until the opening kickoff hands it
	// to the receiving team, as with every other kickoff.
	kicking := input.Home.TeamID
	if receiving == input.Home.TeamID {
		kicking = input.Away.TeamID
	}
	g := state.NewKickoffGameState(input.GameID, input.Home.TeamID, input.Away.TeamID, kicking)
	g.PendingKickoff = true
	g.PendingKickoffSpot = state.KickoffReturnPosition

	teams := map[string]TeamSetup{
		input.Home.TeamID: input.Home,
		input.Away.TeamID: input.Away,
	}

	for !g.Final {
		if g.PlayNumber > o.maxPlaysPerGame {
			logger.WithGameContext(g.GameID).Warn("max plays per game exceeded, forcing game final")
			g.Final = true
			break
		}

		offenseID := g.Field.PossessionTeamID
		defenseID := g.Field.DefensiveTeamID
		offense, ok := teams[offenseID]
		if !ok {
			return g, fmt.Errorf("orchestrator: unknown offense team %q", offenseID)
		}
		defense, ok := teams[defenseID]
		if !ok {
			return g, fmt.Errorf("orchestrator: unknown defense team %q", defenseID)
		}

		src := rng.New(g.GameID, g.PlayNumber, input.RNGSeedSalt)
		result := o.resolvePlay(g, offense, defense, src)

		next, err := o.mgr.CommitPlay(ctx, g, result)
		if err != nil {
			return g, err
		}
		g = next
		o.selector.ApplyFatigue(offenseID, defenseID)

		g = o.checkTerminal(g)

		if input.OnPlay != nil {
			input.OnPlay(g, result)
		}
	}

	return g, nil
}

// resolvePlay dispatches to the pending-try/pending-kickoff forced
// plays or, absent either, to the normal play-call decider, then
// attaches the clock-strategy time.
func (o *Orchestrator) resolvePlay(g state.GameState, offense, defense TeamSetup, src *rng.Source) state.PlayResult {
	sit := config.ClassifySituation(g.Field)
	defensiveCall := chooseDefensiveCall(defense.DefenseArchetype, sit, src)

	var playType state.PlayType
	var kickCtx state.KickContext

	switch {
	case g.PendingTry:
		playType, kickCtx = decideTry(offense.OffenseArchetype, g, offense.TeamID, defense.TeamID)
	case g.PendingKickoff:
		playType = state.PlayKickoff
	default:
		ctx := playcall.Context{
			OffenseArchetype:  offense.OffenseArchetype,
			DefenseArchetype:  defense.DefenseArchetype,
			Field:             g.Field,
			Quarter:           g.Clock.Quarter,
			SecondsRemaining:  g.Clock.SecondsRemaining,
			ScoreDifferential: g.Scoreboard[offense.TeamID] - g.Scoreboard[defense.TeamID],
		}
		decision := playcall.Decide(o.cfg, ctx, src)
		playType, kickCtx = decision.PlayType, decision.KickContext
	}

	field := g.Field
	if g.PendingKickoff {
		field = state.FieldState{
			FieldPosition:    50,
			Down:             1,
			YardsToGo:        10,
			PossessionTeamID: offense.TeamID,
			DefensiveTeamID:  defense.TeamID,
		}
	}

	pkg := o.selector.Select(offense.Ratings, defense.Ratings, playType, sit, field, defensiveCall)

	var result state.PlayResult
	if g.PendingKickoff {
		result = matchup.ResolveKickoff(pkg, g.PendingKickoffSpot, src)
	} else {
		result = matchup.Resolve(o.cfg, pkg, playType, kickCtx, defense.DefenseArchetype, sit, g.Field, src)
	}

	noHuddle := isNoHuddle(offense.OffenseArchetype, g)
	result.NoHuddle = noHuddle

	clockCtx := clockstrategy.Context{
		ScoreDifferential: g.Scoreboard[offense.TeamID] - g.Scoreboard[defense.TeamID],
		Quarter:           g.Clock.Quarter,
		SecondsRemaining:  g.Clock.SecondsRemaining,
		Down:              g.Field.Down,
		YardsToGo:         g.Field.YardsToGo,
		FieldPosition:     g.Field.FieldPosition,
		NoHuddle:          noHuddle,
	}
	result.TimeElapsedSeconds = clockstrategy.TimeElapsed(offense.OffenseArchetype, playType, result.Outcome, clockCtx)

	return result
}

// decideTry picks extra point vs. two-point attempt: aggressive
// coaches (and anyone trailing by exactly 2 inside two minutes of the
// fourth quarter, where a field goal alone wouldn't tie it) go for two.
func decideTry(archetype config.OffenseArchetype, g state.GameState, offenseID, defenseID string) (state.PlayType, state.KickContext) {
	diff := g.Scoreboard[offenseID] - g.Scoreboard[defenseID]
	lateAndNeedsTwo := g.Clock.Quarter >= 4 && g.Clock.SecondsRemaining < 120 && diff == -2
	if archetype == config.ArchetypeAggressive || lateAndNeedsTwo {
		return state.PlayTwoPoint, state.KickContextTwoPoint
	}
	return state.PlayExtraPoint, state.KickContextExtraPoint
}

// isNoHuddle derives the no-huddle signal from situational urgency
// rather than from an explicit coach setting the matchup engine has no
// visibility into: trailing in the last two minutes of a half, or any
// fourth-quarter snap trailing by more than one score.
func isNoHuddle(archetype config.OffenseArchetype, g state.GameState) bool {
	diff := g.Scoreboard[g.Field.PossessionTeamID] - g.Scoreboard[g.Field.DefensiveTeamID]
	if diff >= 0 {
		return false
	}
	if (g.Clock.Quarter == 2 || g.Clock.Quarter == 4) && g.Clock.SecondsRemaining < 120 {
		return true
	}
	if g.Clock.Quarter == 4 && diff <= -9 {
		return true
	}
	return false
}

// chooseDefensiveCall maps a defense's archetype and the offensive
// situation to one of the named calls config.ClassifyCoverage
// recognizes: aggressive defenses sometimes blitz on third down and
// fourth-and-long and otherwise play man, bend-don't-break plays zone
// in the red zone and goal-to-go and prevent everywhere else, man-press
// shows man outside the red zone, and everyone else plays zone by
// default.
func chooseDefensiveCall(archetype config.DefenseArchetype, sit config.Situation, src *rng.Source) string {
	switch archetype {
	case config.DefenseAggressive:
		if sit == config.SituationThirdLong || sit == config.SituationThirdMedium || sit == config.SituationFourthLong {
			if src.Chance(0.55) {
				return "blitz"
			}
		}
		return "man"
	case config.DefenseBendDontBreak:
		if sit == config.SituationRedZone || sit == config.SituationGoalToGo {
			return "zone"
		}
		return "prevent"
	case config.DefenseManPress:
		if sit == config.SituationRedZone || sit == config.SituationGoalToGo {
			return "man"
		}
		return "man"
	default:
		return "zone"
	}
}

// checkTerminal implements the terminal-condition and overtime rules:
// regulation ends tied goes to one untimed sudden-death period; any
// other end of regulation, or any score in overtime, ends the game.
func (o *Orchestrator) checkTerminal(g state.GameState) state.GameState {
	if g.Final {
		return g
	}

	if g.Clock.Quarter == state.OvertimeQuarter {
		if !scoresEqual(g) {
			g.Final = true
		}
		return g
	}

	if g.Clock.Quarter == 4 && g.Clock.SecondsRemaining == 0 {
		if scoresEqual(g) {
			g.Clock.Quarter = state.OvertimeQuarter
			g.Clock.SecondsRemaining = state.SecondsPerQuarter
			g.PendingKickoff = true
			g.PendingKickoffSpot = state.KickoffReturnPosition
		} else {
			g.Final = true
		}
	}

	return g
}

func scoresEqual(g state.GameState) bool {
	opponent, err := g.OpponentOf(g.Possession)
	if err != nil {
		return true
	}
	return g.Scoreboard[g.Possession] == g.Scoreboard[opponent]
}
