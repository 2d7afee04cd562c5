package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origin = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(seconds float64) time.Time {
	return origin.Add(time.Duration(seconds * float64(time.Second)))
}

func TestRemainingSeconds(t *testing.T) {
	state := Start(origin)
	duration := 10 * time.Second

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"at anchor", at(0), 10},
		{"fraction floors", at(0.4), 9},
		{"one left", at(9), 1},
		{"last fraction", at(9.9), 0},
		{"exact end", at(10), 0},
		{"late poll clamps", at(42), 0},
		{"clock behind anchor", at(-3), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, state.RemainingSeconds(duration, tc.now))
		})
	}
}

func TestRemainingIsMonotonicAndNonNegative(t *testing.T) {
	state := Start(origin)
	duration := 5 * time.Second

	previous := state.RemainingSeconds(duration, origin)
	for step := 1; step <= 800; step++ {
		now := origin.Add(time.Duration(step) * 13 * time.Millisecond)
		current := state.RemainingSeconds(duration, now)
		require.GreaterOrEqual(t, current, 0)
		require.LessOrEqual(t, current, previous)
		previous = current
	}
	assert.Equal(t, 0, previous)
}

func TestExpiredUsesExactRemaining(t *testing.T) {
	state := Start(origin)
	duration := 10 * time.Second

	assert.Equal(t, 0, state.RemainingSeconds(duration, at(9.5)))
	assert.False(t, state.Expired(duration, at(9.5)))
	assert.True(t, state.Expired(duration, at(10)))
	assert.True(t, state.Expired(0, origin))
}

func TestPauseFreezesElapsed(t *testing.T) {
	paused := Start(origin).Pause(at(3))

	require.True(t, paused.Paused)
	assert.Equal(t, 3*time.Second, paused.PausedElapsed)
	assert.Equal(t, 2, paused.RemainingSeconds(5*time.Second, at(3)))
	assert.Equal(t, 2, paused.RemainingSeconds(5*time.Second, at(1000)))
	assert.Equal(t, paused, paused.Pause(at(50)))
}

func TestResumeIsDriftIndependent(t *testing.T) {
	for _, delay := range []time.Duration{0, time.Millisecond, 997 * time.Second, 72 * time.Hour} {
		paused := Start(origin).Pause(at(3.25))
		resumeAt := at(3.25).Add(delay)
		resumed := paused.Resume(resumeAt)

		require.False(t, resumed.Paused)
		assert.Equal(t, paused.Remaining(5*time.Second, resumeAt), resumed.Remaining(5*time.Second, resumeAt))
		assert.Equal(t, 1, resumed.RemainingSeconds(5*time.Second, resumeAt))
		assert.Equal(t, 0, resumed.RemainingSeconds(5*time.Second, resumeAt.Add(1750*time.Millisecond)))
	}
}

func TestResumeRunningStateIsNoop(t *testing.T) {
	state := Start(origin)
	assert.Equal(t, state, state.Resume(at(8)))
}
