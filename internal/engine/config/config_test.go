package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

func TestClassifySituation_GoalToGoTakesPriorityOverRedZone(t *testing.T) {
	f := state.FieldState{FieldPosition: 92, Down: 2, YardsToGo: 8}
	assert.Equal(t, SituationGoalToGo, ClassifySituation(f))
}

func TestClassifySituation_RedZoneWhenNotGoalToGo(t *testing.T) {
	f := state.FieldState{FieldPosition: 85, Down: 2, YardsToGo: 3}
	assert.Equal(t, SituationRedZone, ClassifySituation(f))
}

func TestClassifySituation_DownAndDistanceBuckets(t *testing.T) {
	assert.Equal(t, SituationFirstAndTen, ClassifySituation(state.FieldState{FieldPosition: 30, Down: 1, YardsToGo: 10}))
	assert.Equal(t, SituationSecondShort, ClassifySituation(state.FieldState{FieldPosition: 30, Down: 2, YardsToGo: 2}))
	assert.Equal(t, SituationThirdLong, ClassifySituation(state.FieldState{FieldPosition: 30, Down: 3, YardsToGo: 12}))
	assert.Equal(t, SituationFourthMedium, ClassifySituation(state.FieldState{FieldPosition: 30, Down: 4, YardsToGo: 5}))
}

func TestClassifySituation_UnreachableDownFallsBackToFirstAndTen(t *testing.T) {
	f := state.FieldState{FieldPosition: 30, Down: 9, YardsToGo: 10}
	assert.Equal(t, SituationFirstAndTen, ClassifySituation(f))
}

func TestNormalizeOffenseArchetype_UnknownFallsBackToBalanced(t *testing.T) {
	assert.Equal(t, ArchetypeBalanced, NormalizeOffenseArchetype("nonsense"))
	assert.Equal(t, ArchetypeAirRaid, NormalizeOffenseArchetype("air_raid"))
}

func TestNormalizeDefenseArchetype_UnknownFallsBackToBalanced(t *testing.T) {
	assert.Equal(t, DefenseBalanced, NormalizeDefenseArchetype("nonsense"))
	assert.Equal(t, DefenseManPress, NormalizeDefenseArchetype("man_press"))
}

func TestClassifyRunConcept_GoalLinePower(t *testing.T) {
	f := state.FieldState{FieldPosition: 95, YardsToGo: 2}
	assert.Equal(t, ConceptGoalLinePower, ClassifyRunConcept("singleback", SituationGoalToGo, f))
}

func TestClassifyRunConcept_ShortYardagePower(t *testing.T) {
	f := state.FieldState{FieldPosition: 50, YardsToGo: 2}
	assert.Equal(t, ConceptPowerRun, ClassifyRunConcept("singleback", SituationThirdShort, f))
}

func TestClassifyRouteConcept_LongYardageGoesVertical(t *testing.T) {
	assert.Equal(t, ConceptVertical, ClassifyRouteConcept("shotgun", SituationThirdLong))
}

func TestClassifyCoverage_ExplicitCallsWin(t *testing.T) {
	assert.Equal(t, CoverageBlitz, ClassifyCoverage("blitz", DefenseBalanced))
	assert.Equal(t, CoverageMan, ClassifyCoverage("man", DefenseBendDontBreak))
}

func TestClassifyCoverage_FallsBackToArchetypeDefault(t *testing.T) {
	assert.Equal(t, CoverageBlitz, ClassifyCoverage("", DefenseAggressive))
	assert.Equal(t, CoveragePrevent, ClassifyCoverage("", DefenseBendDontBreak))
	assert.Equal(t, CoverageZone, ClassifyCoverage("", DefenseBalanced))
}

func TestRouteConcept_ModifierForUnknownCoverageIsNeutral(t *testing.T) {
	rc := RouteConcept{VsManMod: 0.9, VsZoneMod: 1.1}
	assert.Equal(t, 1.0, rc.ModifierFor(Coverage("unknown")))
	assert.Equal(t, 0.9, rc.ModifierFor(CoverageMan))
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/archetypes.yaml")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig().BalanceTable, cfg.BalanceTable)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
}
