package config

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

// OffenseArchetype is a closed-vocabulary coaching philosophy that
// parameterizes both play selection and clock management.
type OffenseArchetype string

const (
	ArchetypeRunHeavy    OffenseArchetype = "run_heavy"
	ArchetypeBalanced    OffenseArchetype = "balanced"
	ArchetypeAirRaid     OffenseArchetype = "air_raid"
	ArchetypeWestCoast   OffenseArchetype = "west_coast"
	ArchetypeConservative OffenseArchetype = "conservative"
	ArchetypeAggressive  OffenseArchetype = "aggressive"
)

// NormalizeOffenseArchetype maps an unknown/external identifier to the
// closed vocabulary, falling back to "balanced".
func NormalizeOffenseArchetype(raw string) OffenseArchetype {
	switch OffenseArchetype(raw) {
	case ArchetypeRunHeavy, ArchetypeBalanced, ArchetypeAirRaid, ArchetypeWestCoast, ArchetypeConservative, ArchetypeAggressive:
		return OffenseArchetype(raw)
	default:
		return ArchetypeBalanced
	}
}

// DefenseArchetype is the defensive counterpart: a lighter-weight
// counter-tendency modifier plus coverage-shell bias consumed by the
// matchup engine's coverage classification.
type DefenseArchetype string

const (
	DefenseBalanced   DefenseArchetype = "balanced"
	DefenseAggressive DefenseArchetype = "aggressive" // blitz-heavy
	DefenseBendDontBreak DefenseArchetype = "bend_dont_break" // zone/prevent-leaning
	DefenseManPress   DefenseArchetype = "man_press"
)

func NormalizeDefenseArchetype(raw string) DefenseArchetype {
	switch DefenseArchetype(raw) {
	case DefenseBalanced, DefenseAggressive, DefenseBendDontBreak, DefenseManPress:
		return DefenseArchetype(raw)
	default:
		return DefenseBalanced
	}
}

// CoachArchetype is the declarative, designer-editable configuration
// unit: name, philosophy tag, tempo preference, urgency threshold,
// timeout aggressiveness, and a per-situation modifier map. Load fills
// Config.CoachArchetypes with these; the play-call decider reads its
// modifiers from Config.OffenseModifiers and the clock strategy keys its
// own registry by OffenseArchetype, so neither reads this struct.
type CoachArchetype struct {
	Name                  OffenseArchetype
	PhilosophyTag         string
	TempoPreference       float64 // 0 (slow) - 1 (fast)
	UrgencyThreshold      float64 // score-differential fraction that triggers urgency behavior
	TimeoutAggressiveness float64 // 0-1, likelihood of calling an available timeout
	SituationModifiers    map[Situation]float64
}

// RunConcept is the declarative parameter set for one run-play design:
// RB-attribute weights, base yards, OL/DL modifiers, variance.
type RunConcept struct {
	Name             string
	RBAttributeWeights map[string]float64 // e.g. {"power": 0.5, "vision": 0.3, "speed": 0.2}
	BaseYards        float64
	OLModifier       float64
	DLModifier       float64
	Variance         float64 // 0-1, widens the uniform(0.7, 1.0+0.3*variance) multiplier
	FormationModifier float64
}

// RouteConcept is the declarative parameter set for one pass-route
// design.
type RouteConcept struct {
	Name              string
	BaseCompletion    float64
	BaseYards         float64
	QBAttributeWeights map[string]float64
	WRAttributeWeights map[string]float64
	VsManMod          float64
	VsZoneMod         float64
	VsBlitzMod        float64
	VsPreventMod      float64
	Variance          float64
	FormationModifier float64
}

// Coverage is the defensive scheme classification the pass matrix
// resolves a defensive call into.
type Coverage string

const (
	CoverageMan     Coverage = "man"
	CoverageZone    Coverage = "zone"
	CoverageBlitz   Coverage = "blitz"
	CoveragePrevent Coverage = "prevent"
)

// ModifierFor returns the route concept's modifier for the given
// coverage shell, defaulting to 1.0 (no adjustment) for an unrecognized
// coverage rather than erroring.
func (rc RouteConcept) ModifierFor(cov Coverage) float64 {
	switch cov {
	case CoverageMan:
		return rc.VsManMod
	case CoverageZone:
		return rc.VsZoneMod
	case CoverageBlitz:
		return rc.VsBlitzMod
	case CoveragePrevent:
		return rc.VsPreventMod
	default:
		return 1.0
	}
}

// RunConceptKey and RouteConceptKey classify formation+situation into a
// named concept. Kept here (rather than in internal/engine/matchup)
// since the classification depends on the same Situation vocabulary
// the play-call decider uses.
type RunConceptKey string

const (
	ConceptPowerRun      RunConceptKey = "power_run"
	ConceptInsideZone    RunConceptKey = "inside_zone"
	ConceptOutsideZone   RunConceptKey = "outside_zone"
	ConceptDraw          RunConceptKey = "draw"
	ConceptGoalLinePower RunConceptKey = "goal_line_power"
)

type RouteConceptKey string

const (
	ConceptQuickGame    RouteConceptKey = "quick_game"
	ConceptIntermediate RouteConceptKey = "intermediate"
	ConceptVertical     RouteConceptKey = "vertical"
	ConceptScreens      RouteConceptKey = "screens"
	ConceptPlayAction   RouteConceptKey = "play_action"
)

// ClassifyRunConcept maps formation + situation to a run concept.
func ClassifyRunConcept(formation string, sit Situation, f state.FieldState) RunConceptKey {
	switch {
	case f.FieldPosition >= 90 && f.YardsToGo <= 2:
		return ConceptGoalLinePower
	case sit == SituationThirdShort || sit == SituationFourthShort:
		return ConceptPowerRun
	case formation == "outside_zone":
		return ConceptOutsideZone
	case formation == "draw":
		return ConceptDraw
	default:
		return ConceptInsideZone
	}
}

// ClassifyRouteConcept maps formation + situation to a route concept.
func ClassifyRouteConcept(formation string, sit Situation) RouteConceptKey {
	switch {
	case sit == SituationThirdLong || sit == SituationFourthLong:
		return ConceptVertical
	case formation == "screens":
		return ConceptScreens
	case formation == "play_action":
		return ConceptPlayAction
	case sit == SituationThirdShort || sit == SituationFourthShort || sit == SituationGoalToGo:
		return ConceptQuickGame
	default:
		return ConceptIntermediate
	}
}

// ClassifyCoverage maps a defensive call to a coverage shell.
func ClassifyCoverage(defensiveCall string, defArchetype DefenseArchetype) Coverage {
	switch defensiveCall {
	case "man", "cover_1", "cover_0":
		return CoverageMan
	case "zone", "cover_2", "cover_3", "cover_4":
		return CoverageZone
	case "blitz":
		return CoverageBlitz
	case "prevent":
		return CoveragePrevent
	}
	switch defArchetype {
	case DefenseAggressive:
		return CoverageBlitz
	case DefenseManPress:
		return CoverageMan
	case DefenseBendDontBreak:
		return CoveragePrevent
	default:
		return CoverageZone
	}
}
