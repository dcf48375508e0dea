// Package handlers wires the gin HTTP surface to the simulation
// engine: starting a game, streaming its play-by-play, and querying
// the audit log.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitts-dev/gridiron-sim/internal/audit"
	"github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/orchestrator"
	"github.com/stitts-dev/gridiron-sim/internal/engine/personnel"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/roster"
	"github.com/stitts-dev/gridiron-sim/internal/wsgame"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// Handlers holds every dependency the HTTP surface needs.
type Handlers struct {
	Orchestrator *orchestrator.Orchestrator
	RosterSource roster.Provider
	Hub          *wsgame.Hub
	AuditSink    *audit.InMemorySink // nil when running against the gorm sink instead
	Salt         int64

	resultsMu sync.Mutex
	results   map[string]*gameRun
}

// gameRun tracks an in-flight or completed asynchronous simulation so
// GameResult can report status without blocking on the goroutine that
// runs Simulate.
type gameRun struct {
	status string // "running", "complete", "failed"
	final  state.GameState
	err    error
}

type startGameRequest struct {
	HomeTeamID       string `json:"home_team_id" binding:"required"`
	AwayTeamID       string `json:"away_team_id" binding:"required"`
	HomeOffense      string `json:"home_offense_archetype"`
	HomeDefense      string `json:"home_defense_archetype"`
	AwayOffense      string `json:"away_offense_archetype"`
	AwayDefense      string `json:"away_defense_archetype"`
	ReceivingTeamID  string `json:"receiving_team_id"`
}

// StartGame launches one game simulation in the background and
// returns immediately with the game id. Subscribe to
// /games/:gameID/stream before (or right after) the response arrives
// to receive each play as it commits, and poll
// /games/:gameID/result for the final box score.
func (h *Handlers) StartGame(c *gin.Context) {
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	homeRatings, err := h.RosterSource.GetTeamRatings(ctx, req.HomeTeamID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load home team ratings: " + err.Error()})
		return
	}
	awayRatings, err := h.RosterSource.GetTeamRatings(ctx, req.AwayTeamID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load away team ratings: " + err.Error()})
		return
	}

	gameID := uuid.New().String()
	input := orchestrator.GameInput{
		GameID: gameID,
		Home: orchestrator.TeamSetup{
			TeamID:           req.HomeTeamID,
			Ratings:          homeRatings,
			OffenseArchetype: config.NormalizeOffenseArchetype(req.HomeOffense),
			DefenseArchetype: config.NormalizeDefenseArchetype(req.HomeDefense),
		},
		Away: orchestrator.TeamSetup{
			TeamID:           req.AwayTeamID,
			Ratings:          awayRatings,
			OffenseArchetype: config.NormalizeOffenseArchetype(req.AwayOffense),
			DefenseArchetype: config.NormalizeDefenseArchetype(req.AwayDefense),
		},
		ReceivingTeamID: req.ReceivingTeamID,
		RNGSeedSalt:     h.Salt,
		OnPlay: func(_ state.GameState, result state.PlayResult) {
			h.Hub.PublishPlay(gameID, result)
		},
	}

	h.resultsMu.Lock()
	if h.results == nil {
		h.results = make(map[string]*gameRun)
	}
	h.results[gameID] = &gameRun{status: "running"}
	h.resultsMu.Unlock()

	// The request context is cancelled the moment this handler
	// returns, so the background simulation gets its own.
	go h.runGame(context.Background(), gameID, input)

	c.JSON(http.StatusAccepted, gin.H{
		"game_id": gameID,
		"status":  "running",
		"stream":  "/games/" + gameID + "/stream",
		"result":  "/games/" + gameID + "/result",
	})
}

// runGame drives one simulation to completion off the request
// goroutine, publishing each play to the Hub via OnPlay as it commits
// and recording the terminal outcome for GameResult to report.
func (h *Handlers) runGame(ctx context.Context, gameID string, input orchestrator.GameInput) {
	final, err := h.Orchestrator.Simulate(ctx, input)

	h.resultsMu.Lock()
	defer h.resultsMu.Unlock()
	if err != nil {
		logger.WithGameContext(gameID).WithError(err).Error("game simulation failed")
		h.results[gameID] = &gameRun{status: "failed", err: err}
		return
	}
	h.results[gameID] = &gameRun{status: "complete", final: final}
}

// GameResult reports an asynchronous simulation's status and, once
// complete, its final box score.
func (h *Handlers) GameResult(c *gin.Context) {
	gameID := c.Param("gameID")

	h.resultsMu.Lock()
	run, ok := h.results[gameID]
	h.resultsMu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game id"})
		return
	}

	switch run.status {
	case "running":
		c.JSON(http.StatusOK, gin.H{"game_id": gameID, "status": run.status})
	case "failed":
		c.JSON(http.StatusInternalServerError, gin.H{"game_id": gameID, "status": run.status, "error": run.err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{
			"game_id":    gameID,
			"status":     run.status,
			"scoreboard": run.final.Scoreboard,
			"play_count": run.final.PlayNumber - 1,
			"final":      run.final.Final,
		})
	}
}

// GamePlays returns the recorded play-by-play for a game from the
// in-memory audit sink. Only wired when the server was started with
// the in-memory sink rather than the persistent gorm one.
func (h *Handlers) GamePlays(c *gin.Context) {
	if h.AuditSink == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "audit query not available with the configured sink"})
		return
	}
	gameID := c.Param("gameID")
	plays := h.AuditSink.PlaysFor(gameID)
	if limit := parsePage(c, 100); len(plays) > limit {
		plays = plays[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"game_id": gameID, "plays": plays})
}

// StreamGame upgrades the connection to a WebSocket and subscribes the
// client to a game's play-by-play broadcast.
func (h *Handlers) StreamGame(c *gin.Context) {
	gameID := c.Param("gameID")
	if err := h.Hub.ServeWS(gameID, c.Writer, c.Request); err != nil {
		logger.WithGameContext(gameID).WithError(err).Warn("websocket upgrade failed")
	}
}

// HealthCheck is the liveness/readiness probe endpoint.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DefaultStaticRoster builds a StaticProvider seeded with balanced
// ratings for the given team ids, for local development and demos
// where no real roster service is configured.
func DefaultStaticRoster(teamIDs ...string) *roster.StaticProvider {
	ratings := make(map[string]personnel.TeamRatings, len(teamIDs))
	for _, id := range teamIDs {
		ratings[id] = roster.DefaultTeamRatings(id)
	}
	return roster.NewStaticProvider(ratings)
}

// parsePage reads a page-size query parameter with a sane default and
// upper bound, used by audit listing endpoints.
func parsePage(c *gin.Context, defaultSize int) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultSize
	}
	if n > 500 {
		return 500
	}
	return n
}
