// Package clock renders timekeeper readings in a fyne window.
package clock

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"roundtimer/internal/core/model"
	"roundtimer/internal/core/timekeeper"
)

// Callbacks defines clock window action handlers.
type Callbacks struct {
	OnTogglePause func()
	OnStop        func()
	OnStart       func()
	OnKeepAwake   func(bool)
	OnClose       func()
}

// Window shows the phase, round and remaining time.
type Window struct {
	window    fyne.Window
	callbacks Callbacks
	phase     *widget.Label
	round     *widget.Label
	remaining *canvas.Text
	toggle    *widget.Button
	stop      *widget.Button
	keepAwake *widget.Check
}

var phaseColors = map[model.Phase]color.Color{
	model.PhasePrep:  color.NRGBA{R: 0xf5, G: 0xb7, B: 0x00, A: 0xff},
	model.PhaseRound: color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	model.PhaseRest:  color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
}

// New creates the clock window.
func New(app fyne.App, keepAwake bool, callbacks Callbacks) *Window {
	window := app.NewWindow("Round Timer")

	clock := &Window{
		window:    window,
		callbacks: callbacks,
		phase:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		round:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		remaining: canvas.NewText(FormatRemaining(0), theme.Color(theme.ColorNameForeground)),
	}
	clock.remaining.Alignment = fyne.TextAlignCenter
	clock.remaining.TextSize = 96
	clock.remaining.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}

	clock.toggle = widget.NewButton(timekeeper.LabelPause, func() {
		if clock.callbacks.OnTogglePause != nil {
			clock.callbacks.OnTogglePause()
		}
	})
	clock.stop = widget.NewButton("Stop", func() {
		if clock.callbacks.OnStop != nil {
			clock.callbacks.OnStop()
		}
	})
	clock.keepAwake = widget.NewCheck("Keep screen on", func(checked bool) {
		if clock.callbacks.OnKeepAwake != nil {
			clock.callbacks.OnKeepAwake(checked)
		}
	})
	clock.keepAwake.SetChecked(keepAwake)

	buttons := container.NewHBox(clock.toggle, layout.NewSpacer(), clock.keepAwake, layout.NewSpacer(), clock.stop)
	content := container.NewBorder(
		container.NewVBox(clock.phase, clock.round),
		buttons,
		nil, nil,
		container.NewCenter(clock.remaining),
	)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 320))
	window.SetCloseIntercept(func() {
		if clock.callbacks.OnClose != nil {
			clock.callbacks.OnClose()
			return
		}
		window.Close()
	})

	return clock
}

// Render shows a reading. Call on the fyne thread.
func (clock *Window) Render(reading timekeeper.Reading) {
	clock.phase.SetText(reading.Phase.Label())
	clock.round.SetText(RoundLabel(reading.Round))

	clock.remaining.Text = FormatRemaining(reading.SecondsLeft)
	if tint, ok := phaseColors[reading.Phase]; ok {
		clock.remaining.Color = tint
	}
	clock.remaining.Refresh()

	clock.toggle.SetText(ToggleLabel(reading))
	clock.toggle.OnTapped = clock.callbacks.OnTogglePause
	clock.stop.Enable()
}

// RenderStopped shows the idle state and turns the toggle into a start button.
func (clock *Window) RenderStopped() {
	clock.phase.SetText("Stopped")
	clock.round.SetText("")
	clock.remaining.Text = FormatRemaining(0)
	clock.remaining.Color = theme.Color(theme.ColorNameForeground)
	clock.remaining.Refresh()

	clock.toggle.SetText(timekeeper.LabelStart)
	clock.toggle.OnTapped = clock.callbacks.OnStart
	clock.stop.Disable()
}

// Show displays the window.
func (clock *Window) Show() {
	clock.window.Show()
	clock.window.RequestFocus()
}

// Hide hides the window.
func (clock *Window) Hide() {
	clock.window.Hide()
}

// Text returns the displayed phase, round, time and toggle label.
func (clock *Window) Text() (phase, round, remaining, toggle string) {
	return clock.phase.Text, clock.round.Text, clock.remaining.Text, clock.toggle.Text
}
