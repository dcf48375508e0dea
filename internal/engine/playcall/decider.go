// Package playcall implements the play-call decider: archetype
// probabilities reweighted by situation, resolved by weighted random
// selection.
package playcall

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/rng"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// Context carries the situational inputs the contextual modifier
// reweights on top of the archetype modifiers: score differential,
// quarter, time remaining, field position.
type Context struct {
	OffenseArchetype config.OffenseArchetype
	DefenseArchetype config.DefenseArchetype
	Field            state.FieldState
	Quarter          int
	SecondsRemaining int
	ScoreDifferential int // possessing team's score minus opponent's
}

// Decision is the play-call decider's output: a play type plus, for
// kick-family plays, the explicit context tag the matchup engine
// requires.
type Decision struct {
	PlayType    state.PlayType
	KickContext state.KickContext
}

// Decide resolves a full play call end to end: fourth-down logic,
// archetype blending, contextual modifiers, and weighted selection. It
// never fails: an unclassifiable situation falls back to 1st_and_10
// base (handled inside config.ClassifySituation itself).
func Decide(cfg *config.Config, ctx Context, src *rng.Source) Decision {
	sit := config.ClassifySituation(ctx.Field)

	if ctx.Field.Down == 4 {
		if d, ok := fourthDownDecision(ctx); ok {
			return d
		}
	}

	probs := blendedProbabilities(cfg, sit, ctx)
	playType := weightedSelect(probs, src)
	return Decision{PlayType: playType}
}

// fourthDownDecision applies the hard rule: distance > 8 punts,
// distance <= 3 goes for it, 4-8 kicks a field goal if field position
// >= 65 (else punts). The aggressive archetype reduces these
// thresholds. Returns ok=false when the situation calls for a normal
// weighted pass/run selection instead (going for it picks from the
// normal play mix, not literally always a run call).
func fourthDownDecision(ctx Context) (Decision, bool) {
	distance := ctx.Field.YardsToGo
	longThreshold, shortThreshold, fgFieldPosition := 8, 3, 65
	if ctx.OffenseArchetype == config.ArchetypeAggressive {
		longThreshold, shortThreshold, fgFieldPosition = 10, 5, 55
	}

	switch {
	case distance > longThreshold:
		return Decision{PlayType: state.PlayPunt}, true
	case distance <= shortThreshold:
		return Decision{}, false // go for it: fall through to weighted run/pass selection
	default:
		if ctx.Field.FieldPosition >= fgFieldPosition {
			return Decision{PlayType: state.PlayFieldGoal, KickContext: state.KickContextFieldGoal}, true
		}
		return Decision{PlayType: state.PlayPunt}, true
	}
}

// blendedProbabilities combines the base balance table with offense
// and defense archetype modifiers, then the contextual adjustment.
func blendedProbabilities(cfg *config.Config, sit config.Situation, ctx Context) config.PlayProbabilities {
	base, ok := cfg.BalanceTable[sit]
	if !ok {
		base = cfg.BalanceTable[config.SituationFirstAndTen]
	}

	probs := make(config.PlayProbabilities, len(base))
	for pt, p := range base {
		probs[pt] = p
	}

	if offMod, ok := cfg.OffenseModifiers[ctx.OffenseArchetype]; ok {
		applyMultiplicativeModifier(probs, offMod, 1.0)
	}
	if defMod, ok := cfg.DefenseModifiers[ctx.DefenseArchetype]; ok {
		// Defense carries a lesser weight: blend the counter-tendency
		// modifier at half strength rather than applying it outright.
		applyMultiplicativeModifier(probs, defMod, 0.5)
	}

	applyContextualModifiers(probs, ctx)
	renormalize(probs)
	return probs
}

func applyMultiplicativeModifier(probs config.PlayProbabilities, mod config.PlayProbabilities, weight float64) {
	for pt, factor := range mod {
		if _, exists := probs[pt]; !exists {
			continue
		}
		blended := 1.0 + (factor-1.0)*weight
		probs[pt] *= blended
	}
	renormalize(probs)
}

// applyContextualModifiers applies small additive probability deltas
// favoring the pass when trailing/urgent, the run when protecting a
// lead.
func applyContextualModifiers(probs config.PlayProbabilities, ctx Context) {
	delta := 0.0
	if ctx.ScoreDifferential <= -14 {
		delta += 0.08
	} else if ctx.ScoreDifferential <= -7 {
		delta += 0.04
	} else if ctx.ScoreDifferential >= 14 {
		delta -= 0.06
	} else if ctx.ScoreDifferential >= 7 {
		delta -= 0.03
	}
	if ctx.Quarter >= 4 && ctx.SecondsRemaining < 120 && ctx.ScoreDifferential < 0 {
		delta += 0.10
	}
	if ctx.Field.FieldPosition >= 80 {
		delta -= 0.02 // red zone: defenses compress, running game gets a small bump
	}

	if _, ok := probs[state.PlayPass]; ok {
		probs[state.PlayPass] += delta
	}
	if _, ok := probs[state.PlayRun]; ok {
		probs[state.PlayRun] -= delta
	}
	clampNonNegative(probs)
}

func clampNonNegative(probs config.PlayProbabilities) {
	for pt, p := range probs {
		if p < 0.01 {
			probs[pt] = 0.01
		}
	}
}

func renormalize(probs config.PlayProbabilities) {
	total := 0.0
	for _, p := range probs {
		total += p
	}
	if total <= 0 {
		return
	}
	for pt := range probs {
		probs[pt] /= total
	}
}

// orderedPlayTypes fixes an iteration order over the play-type space so
// weightedSelect's cumulative-probability walk is reproducible given a
// seed: Go's map iteration order is randomized per run, and ranging
// over the probs map directly would make two runs of the same seed
// pick different plays whenever two outcomes straddle the same roll.
var orderedPlayTypes = []state.PlayType{
	state.PlayRun, state.PlayPass, state.PlayPunt, state.PlayFieldGoal,
}

// weightedSelect walks the cumulative probability distribution and
// returns the play type the roll lands on.
func weightedSelect(probs config.PlayProbabilities, src *rng.Source) state.PlayType {
	roll := src.Float64()
	var cumulative float64
	var last state.PlayType
	for _, pt := range orderedPlayTypes {
		p, ok := probs[pt]
		if !ok {
			continue
		}
		cumulative += p
		last = pt
		if roll <= cumulative {
			return pt
		}
	}
	return last
}
