package transition

import "github.com/stitts-dev/gridiron-sim/internal/engine/state"

func copyBoolMap(src map[int]bool) map[int]bool {
	dst := make(map[int]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyIntMap(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ResolveClock advances the clock by the play's elapsed time, rolling
// the quarter over when it hits zero (regulation only; overtime
// quarter rollover and game-end are an orchestrator concern), and
// latching the two-minute warning the first time either half's clock
// drops to two minutes.
func ResolveClock(clock state.Clock, result state.PlayResult) state.Clock {
	next := clock
	next.TwoMinuteWarningConsumed = copyBoolMap(clock.TwoMinuteWarningConsumed)
	next.TimeoutsRemaining = copyIntMap(clock.TimeoutsRemaining)

	next.SecondsRemaining = clock.SecondsRemaining - result.TimeElapsedSeconds
	if next.SecondsRemaining < 0 {
		next.SecondsRemaining = 0
	}

	half := clock.Half()
	if half != 0 && next.SecondsRemaining <= 120 && !next.TwoMinuteWarningConsumed[half] {
		next.TwoMinuteWarningConsumed[half] = true
	}

	if next.SecondsRemaining == 0 && clock.Quarter < 4 {
		next.Quarter = clock.Quarter + 1
		next.SecondsRemaining = state.SecondsPerQuarter
	}

	return next
}
