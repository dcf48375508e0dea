package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_DecodesRatingsFromUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"team_id": "home",
			"qb":      map[string]float64{"Accuracy": 90, "ArmStrength": 85},
		})
	}))
	defer srv.Close()

	log := logrus.NewEntry(logrus.New())
	p := NewHTTPProvider(srv.URL, 3, time.Second, log)

	r, err := p.GetTeamRatings(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, "home", r.TeamID)
	assert.Equal(t, 90.0, r.QB.Accuracy)
}

func TestHTTPProvider_PropagatesUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := logrus.NewEntry(logrus.New())
	p := NewHTTPProvider(srv.URL, 3, time.Second, log)

	_, err := p.GetTeamRatings(context.Background(), "home")
	assert.Error(t, err)
}

func TestHTTPProvider_ThresholdControlsTripSensitivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := logrus.NewEntry(logrus.New())
	// threshold=1 means a single failed request is enough to trip,
	// since ReadyToTrip requires only counts.Requests >= threshold.
	p := NewHTTPProvider(srv.URL, 1, time.Second, log)

	_, err := p.GetTeamRatings(context.Background(), "home")
	require.Error(t, err)

	_, err = p.GetTeamRatings(context.Background(), "home")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
