// Package alert plays one boundary sound per phase change while holding the
// shared audio output for as short a time as possible.
package alert

import (
	"errors"

	"github.com/rs/zerolog/log"

	"roundtimer/internal/core/model"
)

// ErrNoTone indicates no tone is configured for a phase.
var ErrNoTone = errors.New("no tone for phase")

// Tone identifies an alert sound. Built-in identifiers are synthesized by the
// audio package; any other value is treated as a WAV file path.
type Tone string

const (
	ToneRound Tone = "round"
	ToneRest  Tone = "rest"
)

// Tones maps each phase to the sound played when it is entered.
type Tones map[model.Phase]Tone

// DefaultTones plays the round tone on Round entry and the rest tone otherwise.
func DefaultTones() Tones {
	return Tones{
		model.PhasePrep:  ToneRest,
		model.PhaseRound: ToneRound,
		model.PhaseRest:  ToneRest,
	}
}

// Volume levels applied on focus changes.
const (
	FullVolume   = 1.0
	DuckedVolume = 0.5
)

// Handle controls one playing alert.
type Handle interface {
	Pause()
	Resume()
	Stop()
	SetVolume(volume float64)
}

// Player starts playback of a tone. onDone runs once, from any goroutine,
// when playback finishes on its own; it does not run after Stop.
type Player interface {
	Play(tone Tone, onDone func()) (Handle, error)
}

// Dispatcher runs fn in the owner's serialized execution context.
type Dispatcher func(fn func())

// Config wires a Coordinator to its collaborators.
type Config struct {
	Focus    FocusManager
	Player   Player
	Tones    Tones
	Dispatch Dispatcher
}

// Coordinator owns at most one live alert. Its methods must be called from
// the owner's serialized context; focus changes and playback completion are
// marshaled there via Dispatch, tagged with the alert they belong to.
type Coordinator struct {
	focus    FocusManager
	player   Player
	tones    Tones
	dispatch Dispatcher

	current *liveAlert
	serial  uint64
}

type liveAlert struct {
	coordinator *Coordinator
	serial      uint64
	phase       model.Phase
	handle      Handle
	paused      bool
}

// OnFocusChange implements FocusListener. It may run on any goroutine and
// reads only fields fixed before focus was requested.
func (live *liveAlert) OnFocusChange(change FocusChange) {
	coordinator, serial := live.coordinator, live.serial
	coordinator.dispatch(func() { coordinator.focusChanged(serial, change) })
}

// New creates a Coordinator. A nil Focus or Player disables alerts. Without a
// Dispatch, callbacks run on the goroutine that delivers them.
func New(config Config) *Coordinator {
	tones := config.Tones
	if tones == nil {
		tones = DefaultTones()
	}
	dispatch := config.Dispatch
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Coordinator{
		focus:    config.Focus,
		player:   config.Player,
		tones:    tones,
		dispatch: dispatch,
	}
}

// OnPhaseEntered plays the boundary alert for phase. Focus denial and player
// failures skip the alert.
func (coordinator *Coordinator) OnPhaseEntered(phase model.Phase) {
	if coordinator.focus == nil || coordinator.player == nil {
		return
	}
	coordinator.Release()

	tone, ok := coordinator.tones[phase]
	if !ok || tone == "" {
		log.Debug().Str("phase", phase.String()).Err(ErrNoTone).Msg("alert skipped")
		return
	}

	coordinator.serial++
	live := &liveAlert{coordinator: coordinator, serial: coordinator.serial, phase: phase}
	if !coordinator.focus.RequestFocus(live) {
		log.Debug().Str("phase", phase.String()).Msg("audio focus denied; alert skipped")
		return
	}

	serial := live.serial
	handle, err := coordinator.player.Play(tone, func() {
		coordinator.dispatch(func() { coordinator.completed(serial) })
	})
	if err != nil {
		log.Warn().Err(err).Str("tone", string(tone)).Msg("alert playback failed")
		coordinator.focus.AbandonFocus(live)
		return
	}
	live.handle = handle
	coordinator.current = live
}

func (coordinator *Coordinator) focusChanged(serial uint64, change FocusChange) {
	if coordinator.current == nil || coordinator.current.serial != serial {
		log.Debug().Str("change", string(change)).Msg("stale focus change ignored")
		return
	}
	coordinator.ApplyFocusChange(change)
}

// ApplyFocusChange applies a focus transition to whichever alert is live.
func (coordinator *Coordinator) ApplyFocusChange(change FocusChange) {
	current := coordinator.current
	if current == nil {
		return
	}
	log.Debug().Str("change", string(change)).Str("phase", current.phase.String()).Msg("audio focus changed")

	switch change {
	case FocusGain:
		current.handle.SetVolume(FullVolume)
		if current.paused {
			current.paused = false
			current.handle.Resume()
		}
	case FocusLoss:
		current.handle.Stop()
		coordinator.current = nil
		coordinator.focus.AbandonFocus(current)
	case FocusLossTransient:
		if !current.paused {
			current.paused = true
			current.handle.Pause()
		}
	case FocusLossTransientCanDuck:
		current.handle.SetVolume(DuckedVolume)
	}
}

// Release stops any live alert and gives up audio focus.
func (coordinator *Coordinator) Release() {
	current := coordinator.current
	if current == nil {
		return
	}
	current.handle.Stop()
	coordinator.current = nil
	coordinator.focus.AbandonFocus(current)
}

// Active reports whether an alert is currently owned.
func (coordinator *Coordinator) Active() bool {
	return coordinator.current != nil
}

func (coordinator *Coordinator) completed(serial uint64) {
	current := coordinator.current
	if current == nil || current.serial != serial {
		return
	}
	coordinator.current = nil
	coordinator.focus.AbandonFocus(current)
}
