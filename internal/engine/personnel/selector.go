package personnel

import (
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

// fatigueFloor is the minimum effective-rating multiplier fatigue can
// drive a team to; a team never drops below "tired but not incapable."
const fatigueFloor = 0.85

// fatiguePerPlay is how much a team's freshness decays on each play it
// is on the field for, and fatigueRecoveryPerPlay how much one Rest
// call recovers. Fatigue is applied post-play, never during selection.
const (
	fatiguePerPlay         = 0.01
	fatigueRecoveryPerPlay = 0.02
)

// Selector picks formations and bundles personnel for each snap. It
// owns per-team fatigue state across a single game; the
// PersonnelPackages it hands out are otherwise pure functions of the
// inputs.
type Selector struct {
	freshness map[string]float64 // team id -> 1.0 (fresh) down to fatigueFloor
}

func NewSelector() *Selector {
	return &Selector{freshness: make(map[string]float64)}
}

func (s *Selector) freshnessOf(teamID string) float64 {
	if v, ok := s.freshness[teamID]; ok {
		return v
	}
	return 1.0
}

// Select chooses a formation from (playType, situation, field state),
// then wraps the two teams' aggregate ratings (fatigue-adjusted) in a
// PersonnelPackage.
func (s *Selector) Select(off, def TeamRatings, playType state.PlayType, sit config.Situation, f state.FieldState, defensiveCall string) PersonnelPackage {
	formation := chooseFormation(playType, sit, f)

	adjOff := applyFreshness(off, s.freshnessOf(off.TeamID))
	adjDef := applyFreshness(def, s.freshnessOf(def.TeamID))

	return PersonnelPackage{
		Formation:     formation,
		DefensiveCall: defensiveCall,
		Offense:       adjOff,
		Defense:       adjDef,
	}
}

// ApplyFatigue decrements the freshness of both the offense and the
// defense, the two units on the field for the play.
// Called by the orchestrator after a play resolves, never during
// selection.
func (s *Selector) ApplyFatigue(offenseTeamID, defenseTeamID string) {
	s.freshness[offenseTeamID] = clamp(s.freshnessOf(offenseTeamID)-fatiguePerPlay, fatigueFloor, 1.0)
	s.freshness[defenseTeamID] = clamp(s.freshnessOf(defenseTeamID)-fatiguePerPlay, fatigueFloor, 1.0)
}

// Rest recovers one team's freshness by fatigueRecoveryPerPlay, capped
// at full freshness. The orchestrator does not call it.
func (s *Selector) Rest(teamID string) {
	s.freshness[teamID] = clamp(s.freshnessOf(teamID)+fatigueRecoveryPerPlay, fatigueFloor, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyFreshness scales every attribute on the bundle by the team's
// current freshness factor. Carrying/Kicking/Punting are left
// unscaled: fatigue models in-play execution decay, not equipment or
// leg strength.
func applyFreshness(t TeamRatings, freshness float64) TeamRatings {
	out := t
	out.QB.Accuracy *= freshness
	out.QB.ArmStrength *= freshness
	out.WR.Route *= freshness
	out.WR.Catching *= freshness
	out.OL.PassBlock *= freshness
	out.OL.RunBlock *= freshness
	out.RB.Vision *= freshness
	out.RB.Power *= freshness
	out.RB.Speed *= freshness
	out.DL.PassRush *= freshness
	out.DL.RunDef *= freshness
	out.LB.Coverage *= freshness
	out.LB.RunDef *= freshness
	out.DB.Coverage *= freshness
	out.DB.Press *= freshness
	out.DB.BallSkills *= freshness
	return out
}

// chooseFormation maps (playType, situation) to a formation: goal_line
// if fieldPosition >= 90, I-formation for short-yardage runs,
// shotgun-spread for long-distance passes, and so on.
func chooseFormation(playType state.PlayType, sit config.Situation, f state.FieldState) string {
	if f.FieldPosition >= 90 {
		return "goal_line"
	}

	switch playType {
	case state.PlayRun:
		switch sit {
		case config.SituationThirdShort, config.SituationFourthShort, config.SituationGoalToGo:
			return "i_formation"
		case config.SituationSecondLong, config.SituationThirdLong:
			return "draw"
		default:
			return "singleback"
		}
	case state.PlayPass:
		switch sit {
		case config.SituationThirdLong, config.SituationFourthLong:
			return "shotgun_spread"
		case config.SituationThirdShort, config.SituationFourthShort:
			return "quick_game"
		default:
			return "shotgun"
		}
	case state.PlayFieldGoal, state.PlayExtraPoint:
		return "field_goal"
	case state.PlayPunt:
		return "punt"
	case state.PlayKickoff:
		return "kickoff"
	case state.PlayKneel:
		return "victory"
	default:
		return "base"
	}
}
