package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	menu *fyne.Menu
}

func (desktop *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) { desktop.menu = menu }

func (desktop *fakeDesktop) SetSystemTrayIcon(fyne.Resource) {}

func (desktop *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func (desktop *fakeDesktop) item(label string) *fyne.MenuItem {
	for _, item := range desktop.menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func TestTrayMenuReflectsState(t *testing.T) {
	app := &fakeDesktop{}
	toggles := 0
	manager := New(app, Callbacks{OnTogglePause: func() { toggles++ }})

	require.NotNil(t, app.item("Stopped"))
	assert.True(t, app.item("Pause").Disabled)

	manager.SetStatus("Round 1 · Round 01:59")
	manager.SetPaused(false)
	require.NotNil(t, app.item("Round 1 · Round 01:59"))
	pause := app.item("Pause")
	require.NotNil(t, pause)
	assert.False(t, pause.Disabled)
	pause.Action()
	assert.Equal(t, 1, toggles)

	manager.SetPaused(true)
	require.NotNil(t, app.item("Resume"))

	manager.SetStopped()
	assert.True(t, app.item("Pause").Disabled)
}

func TestTrayToleratesMissingCallbacks(t *testing.T) {
	app := &fakeDesktop{}
	New(app, Callbacks{})
	assert.NotPanics(t, func() {
		app.item("Quit").Action()
		app.item("Silence alert").Action()
	})
}
