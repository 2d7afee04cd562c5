// Package countdown derives remaining phase time from a wall-clock anchor.
//
// Remaining time is recomputed from absolute elapsed time on every call and
// never accumulated, so irregular polling, process suspension or a missed
// tick cannot introduce drift.
package countdown

import "time"

// State is the timing part of the engine state.
type State struct {
	Anchor        time.Time
	PausedElapsed time.Duration
	Paused        bool
}

// Start returns a running state anchored at now.
func Start(now time.Time) State {
	return State{Anchor: now}
}

// Elapsed returns the time consumed in the current phase.
func (state State) Elapsed(now time.Time) time.Duration {
	if state.Paused {
		return state.PausedElapsed
	}
	elapsed := now.Sub(state.Anchor)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the unconsumed part of duration, clamped at zero.
func (state State) Remaining(duration time.Duration, now time.Time) time.Duration {
	remaining := duration - state.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingSeconds floors Remaining to whole seconds.
func (state State) RemainingSeconds(duration time.Duration, now time.Time) int {
	return int(state.Remaining(duration, now) / time.Second)
}

// Expired reports whether the phase has run out.
func (state State) Expired(duration time.Duration, now time.Time) bool {
	return state.Remaining(duration, now) <= 0
}

// Pause freezes elapsed time. Pausing a paused state is a no-op.
func (state State) Pause(now time.Time) State {
	if state.Paused {
		return state
	}
	return State{
		Anchor:        state.Anchor,
		PausedElapsed: state.Elapsed(now),
		Paused:        true,
	}
}

// Resume rebuilds an anchor consistent with the time already consumed.
func (state State) Resume(now time.Time) State {
	if !state.Paused {
		return state
	}
	return State{Anchor: now.Add(-state.PausedElapsed)}
}
