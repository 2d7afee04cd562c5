package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/model"
)

func TestWindowEditsSettings(t *testing.T) {
	app := test.NewTempApp(t)
	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = &settings })

	assert.Equal(t, DefaultSettings(), prefs.Settings())

	prefs.sliders[model.PhaseRest].SetValue(95)
	prefs.roundTone.SetText("/tmp/gong.wav")
	prefs.keepAwake.SetChecked(false)
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.Equal(t, 90*time.Second, saved.Durations.Of(model.PhaseRest))
	assert.Equal(t, alert.Tone("/tmp/gong.wav"), saved.RoundTone)
	assert.Equal(t, alert.ToneRest, saved.RestTone)
	assert.False(t, saved.KeepAwake)
}
