package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roundtimer/internal/core/model"
	"roundtimer/internal/core/timekeeper"
)

func TestFormatRemaining(t *testing.T) {
	cases := map[int]string{
		-3:   "00:00",
		0:    "00:00",
		9:    "00:09",
		60:   "01:00",
		125:  "02:05",
		5999: "99:59",
	}
	for seconds, want := range cases {
		assert.Equal(t, want, FormatRemaining(seconds), "%d", seconds)
	}
}

func TestRoundLabel(t *testing.T) {
	assert.Empty(t, RoundLabel(0))
	assert.Equal(t, "Round 3", RoundLabel(3))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "Prepare 00:05", Status(timekeeper.Reading{Phase: model.PhasePrep, SecondsLeft: 5}))
	assert.Equal(t, "Round 2 · Rest 00:42 (paused)", Status(timekeeper.Reading{
		Phase: model.PhaseRest, Round: 2, SecondsLeft: 42, Paused: true,
	}))
}

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, timekeeper.LabelPause, ToggleLabel(timekeeper.Reading{}))
	assert.Equal(t, timekeeper.LabelStart, ToggleLabel(timekeeper.Reading{Paused: true}))
}
