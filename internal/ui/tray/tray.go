package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnTogglePause func()
	OnSilence     func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	silence    *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Stopped", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.pauseItem.Disabled = true

	manager.silence = fyne.NewMenuItem("Silence alert", invoke(&manager.callbacks.OnSilence))

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if manager.statusItem.Label == status {
		return
	}
	manager.statusItem.Label = status
	manager.refreshMenu()
}

// SetPaused updates the pause item label.
func (manager *Manager) SetPaused(paused bool) {
	label := "Pause"
	if paused {
		label = "Resume"
	}
	if manager.pauseItem.Label == label && !manager.pauseItem.Disabled {
		return
	}
	manager.pauseItem.Label = label
	manager.pauseItem.Disabled = false
	manager.refreshMenu()
}

// SetStopped disables running-only items.
func (manager *Manager) SetStopped() {
	manager.statusItem.Label = "Stopped"
	manager.pauseItem.Label = "Pause"
	manager.pauseItem.Disabled = true
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Round Timer",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		manager.pauseItem,
		manager.silence,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
