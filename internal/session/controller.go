// Package session runs one timekeeper at a time on behalf of the host and
// carries its state across process restarts.
package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/model"
	"roundtimer/internal/core/timekeeper"
	"roundtimer/internal/storage"
)

// ErrNotRunning indicates no timekeeper is active.
var ErrNotRunning = errors.New("no running session")

// Listener receives readings tagged with the engine that produced them.
type Listener func(engine uint64, reading timekeeper.Reading)

// Controller owns the active timekeeper.
type Controller struct {
	store    *storage.Store
	options  timekeeper.Options
	listener Listener

	mu      sync.Mutex
	keeper  *timekeeper.TimeKeeper
	engines uint64
	active  uint64
}

// New creates a Controller. options are used for every engine it starts. A
// non-nil listener replaces options.OnTick.
func New(store *storage.Store, options timekeeper.Options, listener Listener) *Controller {
	return &Controller{store: store, options: options, listener: listener}
}

// Resume restores the saved session, or starts a fresh one with durations
// when there is none or it cannot be restored. It reports whether a saved
// session was resumed.
func (controller *Controller) Resume(durations model.Durations) (bool, error) {
	snapshot, err := controller.store.LoadSnapshot()
	if err != nil {
		if !errors.Is(err, storage.ErrNoSnapshot) {
			log.Warn().Err(err).Msg("discarding unreadable session")
			controller.clearSnapshot()
		}
		return false, controller.Start(durations)
	}

	options, engine := controller.engineOptions()
	keeper, err := timekeeper.Restore(snapshot, nil, options)
	if err != nil {
		log.Warn().Err(err).Msg("discarding saved session")
		controller.clearSnapshot()
		return false, controller.Start(durations)
	}
	controller.replace(keeper, engine)
	return true, nil
}

// Start stops any running engine and starts a fresh one.
func (controller *Controller) Start(durations model.Durations) error {
	options, engine := controller.engineOptions()
	keeper, err := timekeeper.Start(durations, options)
	if err != nil {
		return err
	}
	controller.replace(keeper, engine)
	controller.clearSnapshot()
	return nil
}

// SetTones changes the alert tones used by engines started from now on.
func (controller *Controller) SetTones(tones alert.Tones) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.options.Tones = tones
}

// TogglePause forwards to the running engine.
func (controller *Controller) TogglePause() (timekeeper.Reading, error) {
	keeper := controller.current()
	if keeper == nil {
		return timekeeper.Reading{}, ErrNotRunning
	}
	return keeper.TogglePause()
}

// RevokeFocus hands an audio-focus change to the running engine.
func (controller *Controller) RevokeFocus(change alert.FocusChange) error {
	keeper := controller.current()
	if keeper == nil {
		return ErrNotRunning
	}
	return keeper.RevokeFocus(change)
}

// Engine identifies the running engine, or returns 0 when none runs.
func (controller *Controller) Engine() uint64 {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.active
}

// Current reports whether engine is the one running now.
func (controller *Controller) Current(engine uint64) bool {
	return engine != 0 && controller.Engine() == engine
}

// Running reports whether an engine is active.
func (controller *Controller) Running() bool {
	return controller.current() != nil
}

// Durations returns the configuration of the running engine.
func (controller *Controller) Durations() (model.Durations, error) {
	keeper := controller.current()
	if keeper == nil {
		return nil, ErrNotRunning
	}
	return keeper.Durations(), nil
}

// Persist saves the running engine so the next launch can resume it, then
// stops it.
func (controller *Controller) Persist() error {
	keeper := controller.detach()
	if keeper == nil {
		return nil
	}
	defer keeper.Stop()

	snapshot, err := keeper.Snapshot()
	if err != nil {
		return err
	}
	return controller.store.SaveSnapshot(snapshot)
}

// Stop ends the workout and forgets any saved session.
func (controller *Controller) Stop() {
	if keeper := controller.detach(); keeper != nil {
		keeper.Stop()
	}
	controller.clearSnapshot()
}

func (controller *Controller) replace(keeper *timekeeper.TimeKeeper, engine uint64) {
	controller.mu.Lock()
	previous := controller.keeper
	controller.keeper = keeper
	controller.active = engine
	controller.mu.Unlock()

	if previous != nil {
		previous.Stop()
	}
}

func (controller *Controller) detach() *timekeeper.TimeKeeper {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	keeper := controller.keeper
	controller.keeper = nil
	controller.active = 0
	return keeper
}

func (controller *Controller) engineOptions() (timekeeper.Options, uint64) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.engines++
	engine := controller.engines
	options := controller.options
	if listener := controller.listener; listener != nil {
		options.OnTick = func(reading timekeeper.Reading) { listener(engine, reading) }
	}
	return options, engine
}

func (controller *Controller) current() *timekeeper.TimeKeeper {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.keeper
}

func (controller *Controller) clearSnapshot() {
	if err := controller.store.ClearSnapshot(); err != nil {
		log.Warn().Err(err).Msg("clear saved session")
	}
}
