// Package roster supplies the team-rating bundles the personnel
// selector wraps into a PersonnelPackage each play. Grounded on the
// sports-data-service provider/circuit-breaker pattern: a Provider
// interface in front of whichever upstream data source is configured,
// with a circuit breaker shielding the simulation loop from a flaky or
// slow upstream.
package roster

import (
	"context"

	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
)

// Provider resolves a team identifier to its current aggregate
// ratings bundle.
type Provider interface {
	GetTeamRatings(ctx context.Context, teamID string) (personnel.TeamRatings, error)
}

// StaticProvider serves ratings from an in-memory table. It's the
// provider used by tests and by the server when no roster provider URL
// is configured, where there's no upstream roster service to call.
type StaticProvider struct {
	ratings map[string]personnel.TeamRatings
}

// NewStaticProvider builds a StaticProvider from a fixed set of team
// ratings.
func NewStaticProvider(ratings map[string]personnel.TeamRatings) *StaticProvider {
	return &StaticProvider{ratings: ratings}
}

// GetTeamRatings returns the configured ratings for teamID, falling
// back to a balanced default bundle for any id that wasn't explicitly
// registered (rather than erroring), since a StaticProvider is meant
// to stand in for a real roster service, not enforce a closed roster.
func (p *StaticProvider) GetTeamRatings(_ context.Context, teamID string) (personnel.TeamRatings, error) {
	if r, ok := p.ratings[teamID]; ok {
		return r, nil
	}
	return DefaultTeamRatings(teamID), nil
}

// DefaultTeamRatings is a balanced, middle-of-the-pack team used to
// seed StaticProvider in tests and local development.
func DefaultTeamRatings(teamID string) personnel.TeamRatings {
	r := personnel.TeamRatings{TeamID: teamID}
	r.QB.Accuracy, r.QB.ArmStrength = 75, 75
	r.WR.Route, r.WR.Catching = 75, 75
	r.OL.PassBlock, r.OL.RunBlock = 75, 75
	r.RB.Vision, r.RB.Power, r.RB.Speed, r.RB.PassPro = 75, 75, 75, 70
	r.DL.PassRush, r.DL.RunDef = 75, 75
	r.LB.Coverage, r.LB.RunDef = 75, 75
	r.DB.Coverage, r.DB.Press, r.DB.BallSkills = 75, 75, 75
	r.Carrying, r.Kicking, r.Punting = 80, 80, 75
	return r
}
