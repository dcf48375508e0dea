// Package cache wraps go-redis for the two things worth caching across
// game runs: the archetype/balance configuration (reloaded on a cron
// but read on every play) and completed game results (read by the
// audit API far more often than games are simulated).
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
)

const (
	archetypeConfigKey  = "gridiron:config:archetypes"
	gameResultKeyPrefix = "gridiron:game:"
	defaultGameResultTTL = 24 * time.Hour
)

// Cache is a thin, typed wrapper around a redis.Client for the two
// cached shapes the engine needs.
type Cache struct {
	client *redis.Client
	logger *logrus.Entry
}

// New builds a Cache from a redis connection URL (e.g.
// "redis://localhost:6379/0").
func New(redisURL string, logger *logrus.Entry) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	return &Cache{client: client, logger: logger}, nil
}

// Ping verifies connectivity at startup.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// SetArchetypeConfigRaw caches the raw bytes of a loaded configuration
// document so concurrent game loops don't all re-read the file/bucket
// it came from.
func (c *Cache) SetArchetypeConfigRaw(ctx context.Context, raw []byte) error {
	return c.client.Set(ctx, archetypeConfigKey, raw, 0).Err()
}

// GetArchetypeConfigRaw returns the cached configuration bytes, or
// (nil, redis.Nil) if nothing has been cached yet.
func (c *Cache) GetArchetypeConfigRaw(ctx context.Context) ([]byte, error) {
	return c.client.Get(ctx, archetypeConfigKey).Bytes()
}

// GameResultSummary is the lightweight, cacheable projection of a
// finished game the audit API serves most read traffic from.
type GameResultSummary struct {
	GameID     string         `json:"game_id"`
	Scoreboard map[string]int `json:"scoreboard"`
	PlayCount  int            `json:"play_count"`
	Final      bool           `json:"final"`
}

// SummaryFromGameState projects a GameState down to its cacheable
// summary.
func SummaryFromGameState(g state.GameState) GameResultSummary {
	return GameResultSummary{
		GameID:     g.GameID,
		Scoreboard: g.Scoreboard,
		PlayCount:  g.PlayNumber - 1,
		Final:      g.Final,
	}
}

// SetGameResult caches a finished game's summary.
func (c *Cache) SetGameResult(ctx context.Context, summary GameResultSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gameResultKeyPrefix+summary.GameID, b, defaultGameResultTTL).Err()
}

// GetGameResult reads a cached game summary, if present.
func (c *Cache) GetGameResult(ctx context.Context, gameID string) (GameResultSummary, bool, error) {
	raw, err := c.client.Get(ctx, gameResultKeyPrefix+gameID).Bytes()
	if err == redis.Nil {
		return GameResultSummary{}, false, nil
	}
	if err != nil {
		return GameResultSummary{}, false, err
	}
	var summary GameResultSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return GameResultSummary{}, false, err
	}
	return summary, true, nil
}
