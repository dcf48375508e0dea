// Package clockstrategy implements per-archetype strategies for how
// much game clock a play consumes. Dispatch is a registry from
// archetype identifier to a strategy function, with a fallback chain
// (exact -> alias -> balanced -> placeholder) implemented as a
// sequence of lookups in that registry, not a type-switch or
// inheritance hierarchy.
package clockstrategy

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// Context is everything the situational adjustment needs beyond the
// archetype and play outcome: score differential, quarter/clock,
// down/distance, field position, and the no-huddle signal (derived by
// the orchestrator from situational urgency and threaded in here).
type Context struct {
	ScoreDifferential int
	Quarter           int
	SecondsRemaining  int
	Down              int
	YardsToGo         int
	FieldPosition     int
	NoHuddle          bool
}

// Strategy computes the archetype-specific additive adjustment for one
// play. It never errors; an archetype with nothing distinctive to add
// should return 0.
type Strategy func(playType state.PlayType, ctx Context) int

// aliasMap resolves designer/config-supplied archetype spellings that
// aren't exact registry keys.
var aliasMap = map[config.OffenseArchetype]config.OffenseArchetype{
	"ground_game":         config.ArchetypeRunHeavy,
	"smashmouth":          config.ArchetypeRunHeavy,
	"no_huddle_air_raid":  config.ArchetypeAirRaid,
	"spread":              config.ArchetypeAirRaid,
	"west_coast_offense":  config.ArchetypeWestCoast,
	"bend_dont_break":     config.ArchetypeConservative,
	"four_minute_offense": config.ArchetypeConservative,
	"go_for_it":           config.ArchetypeAggressive,
}

var registry = map[config.OffenseArchetype]Strategy{
	config.ArchetypeRunHeavy: func(playType state.PlayType, ctx Context) int {
		adj := 4
		if playType == state.PlayRun {
			adj += 2
		}
		return adj
	},
	config.ArchetypeAirRaid: func(playType state.PlayType, ctx Context) int {
		adj := -3
		if playType == state.PlayPass {
			adj -= 2
		}
		if ctx.NoHuddle {
			adj -= 5
		}
		return adj
	},
	config.ArchetypeWestCoast: func(playType state.PlayType, ctx Context) int {
		adj := -1
		if playType == state.PlayPass {
			adj -= 1
		}
		return adj
	},
	config.ArchetypeBalanced: func(playType state.PlayType, ctx Context) int {
		return 0
	},
	config.ArchetypeConservative: func(playType state.PlayType, ctx Context) int {
		adj := 2
		if ctx.Down == 3 || ctx.Down == 4 {
			adj += 1
		}
		return adj
	},
	config.ArchetypeAggressive: func(playType state.PlayType, ctx Context) int {
		adj := -2
		if ctx.Down == 4 {
			adj += 1
		}
		return adj
	},
}

// placeholderStrategy is the bottom of the fallback chain: no archetype
// adjustment at all.
func placeholderStrategy(state.PlayType, Context) int { return 0 }

// resolve implements the fallback chain: exact key, then alias, then
// "balanced", then the zero-adjustment placeholder.
func resolve(archetype config.OffenseArchetype) Strategy {
	if s, ok := registry[archetype]; ok {
		return s
	}
	if alias, ok := aliasMap[archetype]; ok {
		if s, ok := registry[alias]; ok {
			return s
		}
	}
	if s, ok := registry[config.ArchetypeBalanced]; ok {
		return s
	}
	return placeholderStrategy
}

// baseTimeSeconds is the league-average clock consumption for a play
// type before any archetype or situational adjustment.
func baseTimeSeconds(playType state.PlayType, outcome state.Outcome) float64 {
	switch playType {
	case state.PlayRun:
		return 38
	case state.PlayPass:
		if outcome == state.OutcomeIncompletion {
			return 13.5
		}
		return 18
	case state.PlayPunt, state.PlayFieldGoal, state.PlayExtraPoint, state.PlayKickoff, state.PlayTwoPoint:
		return 15
	case state.PlayKneel:
		return 40
	case state.PlaySpike:
		return 3
	default:
		return 18
	}
}

// situationalAdjustment is a score/clock/down/field-position-driven
// additive adjustment, stackable on top of the archetype adjustment.
func situationalAdjustment(ctx Context) int {
	adj := 0

	switch {
	case ctx.ScoreDifferential > 14:
		adj += 5
	case ctx.ScoreDifferential >= 7:
		adj += 3
	case ctx.ScoreDifferential < -14:
		adj -= 4
	case ctx.ScoreDifferential <= -7:
		adj -= 2
	}

	if ctx.Quarter >= 4 && ctx.SecondsRemaining < 120 {
		if ctx.ScoreDifferential > 0 {
			adj += 3
		} else if ctx.ScoreDifferential < 0 {
			adj -= 3
		}
	}

	if ctx.Down == 3 && ctx.YardsToGo >= 8 {
		adj -= 1
	}
	if ctx.Down == 4 {
		adj += 2
	}

	if ctx.FieldPosition >= 80 {
		adj += 2
	}
	if ctx.FieldPosition >= 90 {
		adj += 4
	}

	return adj
}

// TimeElapsed combines the base time, archetype strategy, and
// situational adjustment into a clamped [8, 45]-second result. It
// always returns the seconds the play consumed off the pre-snap/play
// clock. The clock transition calculator subtracts this value from the
// game clock as it is; it does not read PlayResult.StopsClock, so a
// clock-stopping play is charged the same time as any other.
func TimeElapsed(archetype config.OffenseArchetype, playType state.PlayType, outcome state.Outcome, ctx Context) int {
	strategy := resolve(archetype)
	base := baseTimeSeconds(playType, outcome)
	total := base + float64(strategy(playType, ctx)) + float64(situationalAdjustment(ctx))

	if total < 8 {
		total = 8
	}
	if total > 45 {
		total = 45
	}
	return int(total)
}
