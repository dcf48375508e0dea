// Package audit provides the persistence layer for committed plays:
// a gorm-backed sink for production use and an in-memory sink for
// tests and ephemeral batch runs, both implementing the
// manager.AuditSink interface structurally.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/engine/validate"
)

// PlayRecord is the persisted row for one committed play.
type PlayRecord struct {
	ID         uint `gorm:"primaryKey"`
	GameID     string `gorm:"index"`
	PlayNumber int
	PlayType   string
	Outcome    string
	YardsGained int
	Violations string // JSON-encoded []validate.Violation, empty when clean
	CreatedAt  time.Time
}

func (PlayRecord) TableName() string { return "play_records" }

// GormSink persists every committed play to a SQL database via gorm.
type GormSink struct {
	db *gorm.DB
}

// NewGormSink builds a GormSink and migrates its table.
func NewGormSink(db *gorm.DB) (*GormSink, error) {
	if err := db.AutoMigrate(&PlayRecord{}); err != nil {
		return nil, err
	}
	return &GormSink{db: db}, nil
}

func (s *GormSink) RecordPlay(ctx context.Context, gameID string, playNumber int, result state.PlayResult, violations []validate.Violation) error {
	var violationsJSON string
	if len(violations) > 0 {
		b, err := json.Marshal(violations)
		if err == nil {
			violationsJSON = string(b)
		}
	}
	record := PlayRecord{
		GameID:      gameID,
		PlayNumber:  playNumber,
		PlayType:    string(result.PlayType),
		Outcome:     string(result.Outcome),
		YardsGained: result.YardsGained,
		Violations:  violationsJSON,
	}
	return s.db.WithContext(ctx).Create(&record).Error
}

// InMemorySink buffers every committed play in memory, keyed by game
// id; used by the server's play-log endpoint and by tests that want to inspect a
// game's full play-by-play without standing up a database.
type InMemorySink struct {
	mu      sync.Mutex
	records map[string][]PlayRecord
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{records: make(map[string][]PlayRecord)}
}

func (s *InMemorySink) RecordPlay(_ context.Context, gameID string, playNumber int, result state.PlayResult, violations []validate.Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var violationsJSON string
	if len(violations) > 0 {
		b, err := json.Marshal(violations)
		if err == nil {
			violationsJSON = string(b)
		}
	}
	s.records[gameID] = append(s.records[gameID], PlayRecord{
		GameID:      gameID,
		PlayNumber:  playNumber,
		PlayType:    string(result.PlayType),
		Outcome:     string(result.Outcome),
		YardsGained: result.YardsGained,
		Violations:  violationsJSON,
	})
	return nil
}

// PlaysFor returns the recorded plays for one game, in commit order.
func (s *InMemorySink) PlaysFor(gameID string) []PlayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PlayRecord, len(s.records[gameID]))
	copy(out, s.records[gameID])
	return out
}
