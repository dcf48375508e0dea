// Package personnel implements the personnel selector: it picks a
// formation for the snap and bundles the attribute sets the matchup
// matrix engine needs into a PersonnelPackage.
//
// This engine operates in team-rating mode: rather than modeling
// individual players and rosters, each team is represented by one
// aggregate TeamRatings bundle per position group, supplied by the
// external roster provider (internal/roster).
package personnel

// TeamRatings is the aggregate, team-rating-mode stand-in for eleven
// players per side. Every attribute is on a 0-100 scale, matching the
// matchup engine's normalization.
type TeamRatings struct {
	TeamID string

	QB struct {
		Accuracy    float64
		ArmStrength float64
	}
	WR struct {
		Route    float64
		Catching float64
	}
	OL struct {
		PassBlock float64
		RunBlock  float64
	}
	RB struct {
		Vision  float64
		Power   float64
		Speed   float64
		PassPro float64 // pass-protection chip-block rating, feeds pass-protection effectiveness
	}
	DL struct {
		PassRush float64
		RunDef   float64
	}
	LB struct {
		Coverage float64
		RunDef   float64
	}
	DB struct {
		Coverage   float64
		Press      float64
		BallSkills float64
	}
	Carrying float64 // ball-security rating, feeds fumble probability
	Kicking  float64 // placekicker leg strength/accuracy
	Punting  float64
}

// RBAttribute reads a named RB attribute for weighted-mean
// computations. Unknown names return 0 rather than erroring (matchup
// calculators never raise).
func (t TeamRatings) RBAttribute(name string) float64 {
	switch name {
	case "vision":
		return t.RB.Vision
	case "power":
		return t.RB.Power
	case "speed":
		return t.RB.Speed
	default:
		return 0
	}
}

// QBAttribute reads a named QB attribute.
func (t TeamRatings) QBAttribute(name string) float64 {
	switch name {
	case "accuracy":
		return t.QB.Accuracy
	case "arm_strength":
		return t.QB.ArmStrength
	default:
		return 0
	}
}

// WRAttribute reads a named WR attribute.
func (t TeamRatings) WRAttribute(name string) float64 {
	switch name {
	case "route":
		return t.WR.Route
	case "catching":
		return t.WR.Catching
	default:
		return 0
	}
}

// PersonnelPackage is the ephemeral, one-play bundle the matchup engine
// consumes.
type PersonnelPackage struct {
	Formation     string
	DefensiveCall string
	Offense       TeamRatings
	Defense       TeamRatings
}
