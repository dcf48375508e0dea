// Package manager implements C8, the Game-State Manager: the single
// entry point that turns one resolved play into a committed GameState
// by running calculate, validate, and apply in sequence, retrying once
// with a safe no-op fallback play if the first attempt fails either
// check, and recording the outcome to an audit sink either way.
package manager

import (
	"context"
	"fmt"

	"github.com/stitts-dev/gridiron-sim/internal/engine/apply"
	"github.com/stitts-dev/gridiron-sim/internal/engine/state"
	"github.com/stitts-dev/gridiron-sim/internal/engine/transition"
	"github.com/stitts-dev/gridiron-sim/internal/engine/validate"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// AuditSink receives a record of every committed play, including any
// validation violations that were overridden by a fallback retry.
type AuditSink interface {
	RecordPlay(ctx context.Context, gameID string, playNumber int, result state.PlayResult, violations []validate.Violation) error
}

// NoopAuditSink discards every record; useful for tests and for
// batch simulation runs that only care about the final score.
type NoopAuditSink struct{}

func (NoopAuditSink) RecordPlay(context.Context, string, int, state.PlayResult, []validate.Violation) error {
	return nil
}

// Manager wires the calculate/validate/apply pipeline together.
type Manager struct {
	audit AuditSink
}

// New builds a Manager backed by the given audit sink. A nil sink is
// replaced with NoopAuditSink so callers never need a nil check.
func New(audit AuditSink) *Manager {
	if audit == nil {
		audit = NoopAuditSink{}
	}
	return &Manager{audit: audit}
}

// CommitPlay runs one play's full state-transition pipeline against
// current and returns the resulting GameState. If the transition the
// matchup engine produced fails validation or application, the
// manager retries exactly once with a neutral fallback play (treated
// as a clock-stopping incompletion) rather than propagating a broken
// game state; only if that fallback also fails does it return an
// error.
func (m *Manager) CommitPlay(ctx context.Context, current state.GameState, result state.PlayResult) (state.GameState, error) {
	t := transition.Calculate(current, result)
	violations := validate.Validate(current, t)

	if len(violations) == 0 {
		next, err := apply.Apply(current, t)
		if err == nil {
			m.recordAudit(ctx, current, result, nil)
			return next, nil
		}
		violations = append(violations, validate.Violation{Code: "APPLY.000", Message: err.Error()})
	}

	logger.WithPlayContext(current.GameID, current.PlayNumber).
		WithField("violations", violationCodes(violations)).
		Warn("play failed validation, retrying with a safe fallback")

	fallback := safeFallback(result)
	fallbackTransition := transition.Calculate(current, fallback)
	fallbackViolations := validate.Validate(current, fallbackTransition)
	if len(fallbackViolations) > 0 {
		m.recordAudit(ctx, current, result, violations)
		return current, fmt.Errorf("manager: fallback play also failed validation: %v", fallbackViolations)
	}

	next, err := apply.Apply(current, fallbackTransition)
	if err != nil {
		m.recordAudit(ctx, current, result, violations)
		return current, fmt.Errorf("manager: fallback play failed to apply: %w", err)
	}

	m.recordAudit(ctx, current, fallback, violations)
	return next, nil
}

// safeFallback is the neutral play substituted when the original
// result can't be committed: no yardage, clock stops, possession and
// down/distance are untouched by the field calculator.
func safeFallback(original state.PlayResult) state.PlayResult {
	return state.PlayResult{
		PlayType:           original.PlayType,
		Outcome:            state.OutcomeIncompletion,
		YardsGained:        0,
		StopsClock:         true,
		TimeElapsedSeconds: 15,
		Description:        "fallback: original result failed validation",
	}
}

func (m *Manager) recordAudit(ctx context.Context, g state.GameState, result state.PlayResult, violations []validate.Violation) {
	if err := m.audit.RecordPlay(ctx, g.GameID, g.PlayNumber, result, violations); err != nil {
		logger.WithGameContext(g.GameID).WithError(err).Error("failed to record play audit")
	}
}

func violationCodes(violations []validate.Violation) []string {
	codes := make([]string, len(violations))
	for i, v := range violations {
		codes[i] = v.Code
	}
	return codes
}
