package clock

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"roundtimer/internal/core/model"
	"roundtimer/internal/core/timekeeper"
)

func TestWindowRender(t *testing.T) {
	app := test.NewTempApp(t)
	toggles := 0
	window := New(app, true, Callbacks{OnTogglePause: func() { toggles++ }})

	window.Render(timekeeper.Reading{Phase: model.PhaseRound, Round: 4, SecondsLeft: 83})
	phase, round, remaining, toggle := window.Text()
	assert.Equal(t, "Round", phase)
	assert.Equal(t, "Round 4", round)
	assert.Equal(t, "01:23", remaining)
	assert.Equal(t, timekeeper.LabelPause, toggle)

	test.Tap(window.toggle)
	assert.Equal(t, 1, toggles)

	window.Render(timekeeper.Reading{Phase: model.PhaseRound, Round: 4, SecondsLeft: 83, Paused: true})
	_, _, _, toggle = window.Text()
	assert.Equal(t, timekeeper.LabelStart, toggle)
}

func TestWindowRenderStopped(t *testing.T) {
	app := test.NewTempApp(t)
	starts := 0
	window := New(app, false, Callbacks{OnStart: func() { starts++ }})

	window.RenderStopped()
	phase, round, remaining, toggle := window.Text()
	assert.Equal(t, "Stopped", phase)
	assert.Empty(t, round)
	assert.Equal(t, "00:00", remaining)
	assert.Equal(t, timekeeper.LabelStart, toggle)
	assert.True(t, window.stop.Disabled())

	test.Tap(window.toggle)
	assert.Equal(t, 1, starts)
}
