package preferences

import (
	"time"

	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Durations model.Durations
	RoundTone alert.Tone
	RestTone  alert.Tone
	KeepAwake bool
}

// DefaultSettings returns default settings for the round timer.
func DefaultSettings() Settings {
	return Settings{
		Durations: model.DefaultDurations(),
		RoundTone: alert.ToneRound,
		RestTone:  alert.ToneRest,
		KeepAwake: true,
	}
}

// Tones converts settings to the per-phase alert tones. Prep shares the rest
// tone.
func (settings Settings) Tones() alert.Tones {
	return alert.Tones{
		model.PhasePrep:  settings.RestTone,
		model.PhaseRound: settings.RoundTone,
		model.PhaseRest:  settings.RestTone,
	}
}

// WithDuration returns a copy with phase set to the snapped duration.
func (settings Settings) WithDuration(phase model.Phase, requested time.Duration) Settings {
	settings.Durations = settings.Durations.Clone()
	settings.Durations[phase] = model.Snap(phase, requested)
	return settings
}
