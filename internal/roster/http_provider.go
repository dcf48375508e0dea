package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
)

// HTTPProvider fetches team ratings from an external roster service,
// with a circuit breaker around the call so a degraded upstream fails
// fast instead of stalling every game the server is starting.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Entry
}

// NewHTTPProvider builds an HTTPProvider. threshold is the minimum
// number of sampled requests the breaker requires before it can trip
// on failure ratio; timeout is both the HTTP client's per-request
// timeout and the breaker's open-state cooldown. MaxRequests (the
// half-open-state concurrency cap) is left at gobreaker's own default
// of 1, a separate concern from the trip threshold.
func NewHTTPProvider(baseURL string, threshold int, timeout time.Duration, logger *logrus.Entry) *HTTPProvider {
	settings := gobreaker.Settings{
		Name:    "roster-provider",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(threshold) && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name, "from": from.String(), "to": to.String(),
			}).Info("roster provider circuit breaker state changed")
		},
	}

	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

type teamRatingsResponse struct {
	TeamID string  `json:"team_id"`
	QB     struct{ Accuracy, ArmStrength float64 } `json:"qb"`
	WR     struct{ Route, Catching float64 }       `json:"wr"`
	OL     struct{ PassBlock, RunBlock float64 }    `json:"ol"`
	RB     struct{ Vision, Power, Speed, PassPro float64 } `json:"rb"`
	DL     struct{ PassRush, RunDef float64 }       `json:"dl"`
	LB     struct{ Coverage, RunDef float64 }       `json:"lb"`
	DB     struct{ Coverage, Press, BallSkills float64 } `json:"db"`
	Carrying, Kicking, Punting float64
}

func (p *HTTPProvider) GetTeamRatings(ctx context.Context, teamID string) (personnel.TeamRatings, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/teams/"+teamID+"/ratings", nil)
		if err != nil {
			return nil, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("roster provider: unexpected status %d for team %q", resp.StatusCode, teamID)
		}
		var body teamRatingsResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		p.logger.WithError(err).WithField("team_id", teamID).Warn("roster provider call failed")
		return personnel.TeamRatings{}, err
	}

	body := result.(teamRatingsResponse)
	r := personnel.TeamRatings{TeamID: body.TeamID}
	r.QB.Accuracy, r.QB.ArmStrength = body.QB.Accuracy, body.QB.ArmStrength
	r.WR.Route, r.WR.Catching = body.WR.Route, body.WR.Catching
	r.OL.PassBlock, r.OL.RunBlock = body.OL.PassBlock, body.OL.RunBlock
	r.RB.Vision, r.RB.Power, r.RB.Speed, r.RB.PassPro = body.RB.Vision, body.RB.Power, body.RB.Speed, body.RB.PassPro
	r.DL.PassRush, r.DL.RunDef = body.DL.PassRush, body.DL.RunDef
	r.LB.Coverage, r.LB.RunDef = body.LB.Coverage, body.LB.RunDef
	r.DB.Coverage, r.DB.Press, r.DB.BallSkills = body.DB.Coverage, body.DB.Press, body.DB.BallSkills
	r.Carrying, r.Kicking, r.Punting = body.Carrying, body.Kicking, body.Punting
	return r, nil
}
