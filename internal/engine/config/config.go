// Package config holds the declarative, designer-editable tables the
// engine consults: coach archetypes, run/route concept matrices, and
// the league-wide situational balance table. It is loaded once at
// engine construction into an immutable Config value and passed down
// by reference; nothing in this package mutates a Config after
// construction.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// PlayProbabilities is a probability vector over play types for one
// situation.
type PlayProbabilities map[state.PlayType]float64

// Config is the full set of read-only tables the play-call decider,
// matchup engine, and clock strategy consult. Treat as immutable once
// returned from Load/DefaultConfig.
type Config struct {
	BalanceTable      map[Situation]PlayProbabilities
	OffenseModifiers  map[OffenseArchetype]PlayProbabilities
	DefenseModifiers  map[DefenseArchetype]PlayProbabilities
	CoachArchetypes   map[OffenseArchetype]CoachArchetype
	RunConcepts       map[RunConceptKey]RunConcept
	RouteConcepts     map[RouteConceptKey]RouteConcept
}

// Load reads an archetype/concept-matrix overlay from the YAML file at
// path (if present) on top of DefaultConfig, matching the fallback
// chain discipline used elsewhere in this engine: a missing file is
// not fatal, it just means the hard-coded defaults stand. A file that
// IS present but cannot be read or is malformed is a configuration
// error, fatal at game start.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read archetype config at %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("malformed archetype config at %s: %w", path, err)
	}

	var overlay struct {
		CoachArchetypes map[string]CoachArchetype `mapstructure:"coach_archetypes"`
	}
	if err := v.Unmarshal(&overlay); err != nil {
		return nil, fmt.Errorf("malformed archetype config at %s: %w", path, err)
	}
	for name, arch := range overlay.CoachArchetypes {
		arch.Name = OffenseArchetype(name)
		cfg.CoachArchetypes[OffenseArchetype(name)] = arch
	}
	return cfg, nil
}

// DefaultConfig is the hard-coded placeholder table set: the bottom of
// every fallback chain in this engine. It never fails to produce a
// usable table.
func DefaultConfig() *Config {
	return &Config{
		BalanceTable:     defaultBalanceTable(),
		OffenseModifiers: defaultOffenseModifiers(),
		DefenseModifiers: defaultDefenseModifiers(),
		CoachArchetypes:  defaultCoachArchetypes(),
		RunConcepts:      defaultRunConcepts(),
		RouteConcepts:    defaultRouteConcepts(),
	}
}

func defaultBalanceTable() map[Situation]PlayProbabilities {
	return map[Situation]PlayProbabilities{
		SituationFirstAndTen:  {state.PlayRun: 0.50, state.PlayPass: 0.50},
		SituationSecondShort:  {state.PlayRun: 0.60, state.PlayPass: 0.40},
		SituationSecondMedium: {state.PlayRun: 0.45, state.PlayPass: 0.55},
		SituationSecondLong:   {state.PlayRun: 0.25, state.PlayPass: 0.75},
		SituationThirdShort:   {state.PlayRun: 0.55, state.PlayPass: 0.45},
		SituationThirdMedium:  {state.PlayRun: 0.20, state.PlayPass: 0.80},
		SituationThirdLong:    {state.PlayRun: 0.10, state.PlayPass: 0.90},
		SituationFourthShort:  {state.PlayRun: 0.70, state.PlayPass: 0.30},
		SituationFourthMedium: {state.PlayRun: 0.30, state.PlayPass: 0.70},
		SituationFourthLong:   {state.PlayRun: 0.10, state.PlayPass: 0.90},
		SituationGoalToGo:     {state.PlayRun: 0.60, state.PlayPass: 0.40},
		SituationRedZone:      {state.PlayRun: 0.45, state.PlayPass: 0.55},
	}
}

// defaultOffenseModifiers are multiplicative, renormalized against the
// balance table.
func defaultOffenseModifiers() map[OffenseArchetype]PlayProbabilities {
	return map[OffenseArchetype]PlayProbabilities{
		ArchetypeRunHeavy:     {state.PlayRun: 1.35, state.PlayPass: 0.75},
		ArchetypeBalanced:     {state.PlayRun: 1.0, state.PlayPass: 1.0},
		ArchetypeAirRaid:      {state.PlayRun: 0.55, state.PlayPass: 1.35},
		ArchetypeWestCoast:    {state.PlayRun: 0.85, state.PlayPass: 1.10},
		ArchetypeConservative: {state.PlayRun: 1.20, state.PlayPass: 0.85},
		ArchetypeAggressive:   {state.PlayRun: 0.90, state.PlayPass: 1.10},
	}
}

// defaultDefenseModifiers apply at a lesser weight; the play-call
// decider scales these by 0.5 before blending.
func defaultDefenseModifiers() map[DefenseArchetype]PlayProbabilities {
	return map[DefenseArchetype]PlayProbabilities{
		DefenseBalanced:      {state.PlayRun: 1.0, state.PlayPass: 1.0},
		DefenseAggressive:    {state.PlayRun: 0.9, state.PlayPass: 1.1}, // attack the blitz with quick throws
		DefenseBendDontBreak: {state.PlayRun: 1.1, state.PlayPass: 0.9},
		DefenseManPress:      {state.PlayRun: 1.05, state.PlayPass: 0.95},
	}
}

func defaultCoachArchetypes() map[OffenseArchetype]CoachArchetype {
	return map[OffenseArchetype]CoachArchetype{
		ArchetypeRunHeavy: {
			Name: ArchetypeRunHeavy, PhilosophyTag: "ground_and_pound",
			TempoPreference: 0.25, UrgencyThreshold: 0.30, TimeoutAggressiveness: 0.3,
		},
		ArchetypeBalanced: {
			Name: ArchetypeBalanced, PhilosophyTag: "balanced",
			TempoPreference: 0.5, UrgencyThreshold: 0.40, TimeoutAggressiveness: 0.5,
		},
		ArchetypeAirRaid: {
			Name: ArchetypeAirRaid, PhilosophyTag: "spread_the_field",
			TempoPreference: 0.9, UrgencyThreshold: 0.55, TimeoutAggressiveness: 0.7,
		},
		ArchetypeWestCoast: {
			Name: ArchetypeWestCoast, PhilosophyTag: "timing_and_rhythm",
			TempoPreference: 0.55, UrgencyThreshold: 0.40, TimeoutAggressiveness: 0.5,
		},
		ArchetypeConservative: {
			Name: ArchetypeConservative, PhilosophyTag: "protect_the_lead",
			TempoPreference: 0.2, UrgencyThreshold: 0.25, TimeoutAggressiveness: 0.2,
		},
		ArchetypeAggressive: {
			Name: ArchetypeAggressive, PhilosophyTag: "go_for_it",
			TempoPreference: 0.75, UrgencyThreshold: 0.60, TimeoutAggressiveness: 0.8,
		},
	}
}

func defaultRunConcepts() map[RunConceptKey]RunConcept {
	return map[RunConceptKey]RunConcept{
		ConceptPowerRun: {
			Name: "power_run",
			RBAttributeWeights: map[string]float64{"power": 0.5, "vision": 0.3, "speed": 0.2},
			BaseYards: 3.8, OLModifier: 1.1, DLModifier: 1.0, Variance: 0.4, FormationModifier: 1.0,
		},
		ConceptInsideZone: {
			Name: "inside_zone",
			RBAttributeWeights: map[string]float64{"vision": 0.45, "power": 0.25, "speed": 0.3},
			BaseYards: 4.3, OLModifier: 1.0, DLModifier: 1.0, Variance: 0.5, FormationModifier: 1.0,
		},
		ConceptOutsideZone: {
			Name: "outside_zone",
			RBAttributeWeights: map[string]float64{"speed": 0.5, "vision": 0.35, "power": 0.15},
			BaseYards: 4.6, OLModifier: 0.95, DLModifier: 1.05, Variance: 0.6, FormationModifier: 1.0,
		},
		ConceptDraw: {
			Name: "draw",
			RBAttributeWeights: map[string]float64{"vision": 0.4, "speed": 0.4, "power": 0.2},
			BaseYards: 5.0, OLModifier: 0.9, DLModifier: 0.9, Variance: 0.7, FormationModifier: 1.05,
		},
		ConceptGoalLinePower: {
			Name: "goal_line_power",
			RBAttributeWeights: map[string]float64{"power": 0.65, "vision": 0.2, "speed": 0.15},
			BaseYards: 1.8, OLModifier: 1.2, DLModifier: 1.15, Variance: 0.3, FormationModifier: 1.1,
		},
	}
}

func defaultRouteConcepts() map[RouteConceptKey]RouteConcept {
	return map[RouteConceptKey]RouteConcept{
		ConceptQuickGame: {
			Name: "quick_game", BaseCompletion: 0.72, BaseYards: 5.5,
			QBAttributeWeights: map[string]float64{"accuracy": 0.7, "arm_strength": 0.3},
			WRAttributeWeights: map[string]float64{"route": 0.6, "catching": 0.4},
			VsManMod: 0.95, VsZoneMod: 1.05, VsBlitzMod: 1.0, VsPreventMod: 0.9,
			Variance: 0.3, FormationModifier: 1.0,
		},
		ConceptIntermediate: {
			Name: "intermediate", BaseCompletion: 0.62, BaseYards: 9.5,
			QBAttributeWeights: map[string]float64{"accuracy": 0.55, "arm_strength": 0.45},
			WRAttributeWeights: map[string]float64{"route": 0.5, "catching": 0.5},
			VsManMod: 1.0, VsZoneMod: 0.95, VsBlitzMod: 0.85, VsPreventMod: 1.0,
			Variance: 0.45, FormationModifier: 1.0,
		},
		ConceptVertical: {
			Name: "vertical", BaseCompletion: 0.42, BaseYards: 18.0,
			QBAttributeWeights: map[string]float64{"accuracy": 0.4, "arm_strength": 0.6},
			WRAttributeWeights: map[string]float64{"route": 0.35, "catching": 0.65},
			VsManMod: 0.9, VsZoneMod: 1.0, VsBlitzMod: 0.8, VsPreventMod: 1.1,
			Variance: 0.7, FormationModifier: 0.95,
		},
		ConceptScreens: {
			Name: "screens", BaseCompletion: 0.80, BaseYards: 4.5,
			QBAttributeWeights: map[string]float64{"accuracy": 0.8, "arm_strength": 0.2},
			WRAttributeWeights: map[string]float64{"route": 0.3, "catching": 0.7},
			VsManMod: 0.85, VsZoneMod: 1.1, VsBlitzMod: 1.25, VsPreventMod: 0.8,
			Variance: 0.6, FormationModifier: 1.0,
		},
		ConceptPlayAction: {
			Name: "play_action", BaseCompletion: 0.58, BaseYards: 11.0,
			QBAttributeWeights: map[string]float64{"accuracy": 0.5, "arm_strength": 0.5},
			WRAttributeWeights: map[string]float64{"route": 0.55, "catching": 0.45},
			VsManMod: 1.05, VsZoneMod: 1.05, VsBlitzMod: 0.75, VsPreventMod: 0.95,
			Variance: 0.5, FormationModifier: 1.0,
		},
	}
}
