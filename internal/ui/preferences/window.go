package preferences

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/model"
	"roundtimer/internal/ui/clock"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	sliders   map[model.Phase]*widget.Slider
	values    map[model.Phase]*widget.Label
	roundTone *widget.Entry
	restTone  *widget.Entry
	keepAwake *widget.Check
}

// New creates a preferences window. onSave receives the edited settings when
// the user starts a workout with them.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Round Timer Settings")

	prefs := &Window{
		window:    window,
		settings:  settings,
		onSave:    onSave,
		sliders:   make(map[model.Phase]*widget.Slider),
		values:    make(map[model.Phase]*widget.Label),
		roundTone: widget.NewEntry(),
		restTone:  widget.NewEntry(),
		keepAwake: widget.NewCheck("Keep screen on", nil),
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, phase := range model.Phases() {
		form.Add(prefs.durationRow(phase))
	}

	prefs.roundTone.SetPlaceHolder(string(alert.ToneRound))
	prefs.restTone.SetPlaceHolder(string(alert.ToneRest))
	form.Add(widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	form.Add(widget.NewForm(
		widget.NewFormItem("Round tone", prefs.roundTone),
		widget.NewFormItem("Rest tone", prefs.restTone),
	))
	form.Add(prefs.keepAwake)

	startButton := widget.NewButton("Start workout", prefs.handleSave)
	startButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), startButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 380))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

func (prefs *Window) durationRow(phase model.Phase) fyne.CanvasObject {
	slider := widget.NewSlider(0, phase.MaxDuration().Seconds())
	slider.Step = phase.Step().Seconds()
	value := widget.NewLabel("")
	slider.OnChanged = func(seconds float64) {
		value.SetText(clock.FormatRemaining(int(seconds)))
	}
	prefs.sliders[phase] = slider
	prefs.values[phase] = value

	return container.NewBorder(nil, nil, widget.NewLabel(phase.Label()), value, slider)
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	for phase, slider := range prefs.sliders {
		slider.SetValue(settings.Durations.Of(phase).Seconds())
		prefs.values[phase].SetText(clock.FormatRemaining(int(settings.Durations.Of(phase) / time.Second)))
	}
	prefs.roundTone.SetText(toneText(settings.RoundTone, alert.ToneRound))
	prefs.restTone.SetText(toneText(settings.RestTone, alert.ToneRest))
	prefs.keepAwake.SetChecked(settings.KeepAwake)
}

// Settings returns the values currently shown.
func (prefs *Window) Settings() Settings {
	settings := prefs.settings
	for phase, slider := range prefs.sliders {
		settings = settings.WithDuration(phase, time.Duration(slider.Value)*time.Second)
	}
	settings.RoundTone = toneFrom(prefs.roundTone.Text, alert.ToneRound)
	settings.RestTone = toneFrom(prefs.restTone.Text, alert.ToneRest)
	settings.KeepAwake = prefs.keepAwake.Checked
	return settings
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.Settings()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

func toneText(tone, builtin alert.Tone) string {
	if tone == builtin {
		return ""
	}
	return string(tone)
}

func toneFrom(text string, builtin alert.Tone) alert.Tone {
	if text == "" {
		return builtin
	}
	return alert.Tone(text)
}
