package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog/log"

	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/timekeeper"
	"roundtimer/internal/session"
	"roundtimer/internal/storage"
	"roundtimer/internal/ui/clock"
	"roundtimer/internal/ui/preferences"
	"roundtimer/internal/ui/tray"
)

// Host connects the session controller to the windows and the tray. All
// methods run on the fyne thread.
type Host struct {
	app        fyne.App
	store      *storage.Store
	controller *session.Controller
	settings   preferences.Settings

	clock   *clock.Window
	prefs   *preferences.Window
	tray    *tray.Manager
	desktop desktop.App

	last     timekeeper.Reading
	rendered bool
}

// Launch resumes the saved workout, or starts a new one when fresh is set or
// nothing can be resumed.
func (host *Host) Launch(fresh bool) {
	if fresh {
		host.Start()
		return
	}
	resumed, err := host.controller.Resume(host.settings.Durations)
	if err != nil {
		log.Error().Err(err).Msg("start workout")
		host.showStopped()
		return
	}
	if resumed {
		log.Info().Msg("resumed saved workout")
	}
	host.applyKeepAwake()
}

// Start begins a new workout with the current settings.
func (host *Host) Start() {
	host.rendered = false
	if err := host.controller.Start(host.settings.Durations); err != nil {
		log.Error().Err(err).Msg("start workout")
		host.showStopped()
		return
	}
	host.applyKeepAwake()
}

// Render shows a reading from engine. Readings from an engine that has since
// been replaced or stopped are dropped.
func (host *Host) Render(engine uint64, reading timekeeper.Reading) {
	if !host.controller.Current(engine) {
		return
	}
	host.show(reading)
}

func (host *Host) show(reading timekeeper.Reading) {
	if host.rendered && host.last == reading {
		return
	}
	host.last = reading
	host.rendered = true

	host.clock.Render(reading)
	if host.tray != nil {
		host.tray.SetStatus(clock.Status(reading))
		host.tray.SetPaused(reading.Paused)
	}
	if host.desktop != nil {
		icon := theme.MediaPlayIcon()
		if reading.Paused {
			icon = theme.MediaPauseIcon()
		}
		host.desktop.SetSystemTrayIcon(icon)
	}
}

// TogglePause pauses or resumes the running workout.
func (host *Host) TogglePause() {
	reading, err := host.controller.TogglePause()
	if err != nil {
		log.Warn().Err(err).Msg("toggle pause")
		return
	}
	host.show(reading)
}

// Silence cuts the current alert short.
func (host *Host) Silence() {
	if err := host.controller.RevokeFocus(alert.FocusLoss); err != nil {
		log.Debug().Err(err).Msg("silence alert")
	}
}

// Stop ends the workout and discards the saved session.
func (host *Host) Stop() {
	host.controller.Stop()
	host.showStopped()
	host.applyKeepAwake()
}

// SetKeepAwake stores the keep-awake preference and applies it.
func (host *Host) SetKeepAwake(keepAwake bool) {
	host.settings.KeepAwake = keepAwake
	host.saveSettings()
	host.applyKeepAwake()
}

// ApplySettings saves edited preferences and restarts the workout with them.
func (host *Host) ApplySettings(settings preferences.Settings) {
	host.settings = settings
	host.saveSettings()
	host.controller.SetTones(settings.Tones())
	host.Start()
	host.clock.Show()
}

// Close hides the clock into the tray, or quits when there is no tray.
func (host *Host) Close() {
	if host.tray != nil {
		host.clock.Hide()
		return
	}
	host.Quit()
}

// Quit saves the workout and exits the app.
func (host *Host) Quit() {
	host.Persist()
	host.app.Quit()
}

// Persist saves the running workout for the next launch.
func (host *Host) Persist() {
	if err := host.controller.Persist(); err != nil {
		log.Error().Err(err).Msg("save workout")
	}
	host.applyKeepAwake()
}

func (host *Host) showStopped() {
	host.rendered = false
	host.clock.RenderStopped()
	if host.tray != nil {
		host.tray.SetStopped()
	}
	if host.desktop != nil {
		host.desktop.SetSystemTrayIcon(theme.MediaStopIcon())
	}
}

func (host *Host) saveSettings() {
	if err := host.store.SaveSettings(host.settings); err != nil {
		log.Error().Err(err).Msg("save settings")
	}
}

func (host *Host) applyKeepAwake() {
	host.app.Driver().SetDisableScreenBlanking(host.settings.KeepAwake && host.controller.Running())
}
