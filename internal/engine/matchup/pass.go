package matchup

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/rng"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// Completion-probability weights: (w_qb, w_wr, w_prot, w_cov) =
// (0.4, 0.3, 0.2, 0.1).
const (
	weightQB   = 0.4
	weightWR   = 0.3
	weightProt = 0.2
	weightCov  = 0.1
)

// ResolvePass resolves a pass play end to end: concept and coverage
// classification, completion probability, and the resulting outcome.
func ResolvePass(cfg *config.Config, pkg personnel.PersonnelPackage, defArchetype config.DefenseArchetype, sit config.Situation, f state.FieldState, src *rng.Source) state.PlayResult {
	conceptKey := config.ClassifyRouteConcept(pkg.Formation, sit)
	concept, ok := cfg.RouteConcepts[conceptKey]
	if !ok {
		concept = cfg.RouteConcepts[config.ConceptIntermediate]
	}
	coverage := config.ClassifyCoverage(pkg.DefensiveCall, defArchetype)

	qbEff := weightedMeanNormalized(pkg.Offense.QBAttribute, concept.QBAttributeWeights)
	wrEff := weightedMeanNormalized(pkg.Offense.WRAttribute, concept.WRAttributeWeights)
	protEff := safeRatio(pkg.Offense.OL.PassBlock+0.3*pkg.Offense.RB.PassPro, pkg.Defense.DL.PassRush*1.2)
	covEff := (pkg.Defense.DB.Coverage * concept.ModifierFor(coverage)) / 100

	completionProb := (qbEff*weightQB + wrEff*weightWR + protEff*weightProt - covEff*weightCov) * concept.FormationModifier

	// Step 8 adjustments.
	if (sit == config.SituationThirdLong || sit == config.SituationThirdMedium) && qbEff > 0.6 {
		completionProb += 0.08
	}
	if coverage == config.CoverageBlitz && conceptKey != config.ConceptQuickGame {
		completionProb *= 0.70
	}
	completionProb = clamp01(completionProb)

	result := state.PlayResult{
		PlayType:      state.PlayPass,
		Formation:     pkg.Formation,
		DefensiveCall: pkg.DefensiveCall,
		Description:   "pass: " + concept.Name + " vs " + string(coverage),
	}

	sackProb := clampFloat(0.07-0.04*protEff, 0.02, 0.20)
	if src.Chance(sackProb) {
		result.Outcome = state.OutcomeSack
		result.YardsGained = -int(src.Uniform(3, 10.0001))
		return result
	}

	interceptionProb := 0.025 * (1 - qbEff)
	if src.Chance(interceptionProb) {
		result.Outcome = state.OutcomeInterception
		result.IsTurnover = true
		return result
	}

	if !src.Chance(completionProb) {
		result.Outcome = state.OutcomeIncompletion
		result.YardsGained = 0
		result.StopsClock = true
		return result
	}

	combinedEff := clamp01(qbEff*weightQB + wrEff*weightWR + protEff*weightProt)
	baseYards := concept.BaseYards
	if sit == config.SituationRedZone || sit == config.SituationGoalToGo {
		baseYards *= 0.85 // red zone compression, -15% yards
	}
	yards := baseYards * (0.6 + 0.8*combinedEff) * src.Uniform(0.6, 1.4)

	finalPosition := f.FieldPosition + int(roundHalfAwayFromZero(yards))
	result.YardsGained = int(roundHalfAwayFromZero(yards))

	tdFloor := 0.0
	if sit == config.SituationRedZone || sit == config.SituationGoalToGo {
		tdFloor = 0.05
	}
	if finalPosition >= 100 || src.Chance(tdFloor) {
		result.Outcome = state.OutcomeTouchdown
		result.IsScore = true
		result.PointsScored = 6
		result.FirstDownAchieved = true
		return result
	}

	result.Outcome = state.OutcomeGain
	result.FirstDownAchieved = result.YardsGained >= f.YardsToGo
	return result
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
