package timekeeper

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/countdown"
	"roundtimer/internal/core/model"
)

// ErrStopped indicates an operation on a stopped TimeKeeper.
var ErrStopped = errors.New("timekeeper stopped")

// DefaultTickInterval keeps phase changes perceptibly immediate without
// waking the host needlessly.
const DefaultTickInterval = 10 * time.Millisecond

// Options contains runtime collaborators for a TimeKeeper.
type Options struct {
	TickInterval time.Duration
	Clock        clockwork.Clock

	Focus  alert.FocusManager
	Player alert.Player
	Tones  alert.Tones

	// OnTick receives every reading on the engine goroutine. Hosts marshal
	// to their UI thread themselves.
	OnTick func(Reading)
}

// TimeKeeper cycles a workout through its phases. All engine state is owned
// by a single goroutine; public methods hand work to it over a channel.
type TimeKeeper struct {
	options   Options
	clock     clockwork.Clock
	durations model.Durations
	session   uuid.UUID

	// Owned by the run goroutine.
	phase  model.Phase
	round  int
	timing countdown.State
	alerts *alert.Coordinator

	// Host calls, focus changes and alert completions share one FIFO
	// mailbox so they apply in the order they were delivered.
	mailMu   sync.Mutex
	mailbox  []func()
	wake     chan struct{}
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu     sync.Mutex
	events []chan Event
}

// Start validates durations and launches a TimeKeeper in the Prep phase.
func Start(durations model.Durations, options Options) (*TimeKeeper, error) {
	if err := durations.Validate(); err != nil {
		return nil, fmt.Errorf("start timekeeper: %w", err)
	}
	keeper := newKeeper(durations, options, uuid.New())
	keeper.phase = model.PhasePrep
	keeper.timing = countdown.Start(keeper.clock.Now())

	log.Info().
		Str("session", keeper.session.String()).
		Dur("prep", durations.Of(model.PhasePrep)).
		Dur("round", durations.Of(model.PhaseRound)).
		Dur("rest", durations.Of(model.PhaseRest)).
		Msg("timekeeper started")

	go keeper.run()
	return keeper, nil
}

// Restore rebuilds a running TimeKeeper from a snapshot. Remaining time
// follows from the preserved anchor, so it matches what the snapshotted engine
// would report now.
func Restore(snapshot Snapshot, durations model.Durations, options Options) (*TimeKeeper, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	if durations == nil {
		durations = snapshot.Durations
	}
	if err := durations.Validate(); err != nil {
		return nil, fmt.Errorf("restore timekeeper: %w", err)
	}

	session, err := uuid.Parse(snapshot.SessionID)
	if err != nil {
		session = uuid.New()
	}
	keeper := newKeeper(durations, options, session)
	keeper.phase = snapshot.Phase
	keeper.round = snapshot.Round
	keeper.timing = countdown.State{
		Anchor:        snapshot.Anchor,
		PausedElapsed: snapshot.PausedElapsed,
		Paused:        snapshot.Paused,
	}

	log.Info().
		Str("session", keeper.session.String()).
		Str("phase", keeper.phase.String()).
		Int("round", keeper.round).
		Bool("paused", snapshot.Paused).
		Msg("timekeeper restored")

	go keeper.run()
	return keeper, nil
}

func newKeeper(durations model.Durations, options Options, session uuid.UUID) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}

	keeper := &TimeKeeper{
		options:   options,
		clock:     options.Clock,
		durations: durations.Clone(),
		session:   session,
		wake:      make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	keeper.alerts = alert.New(alert.Config{
		Focus:    options.Focus,
		Player:   options.Player,
		Tones:    options.Tones,
		Dispatch: keeper.post,
	})
	return keeper
}

// Session returns the identifier carried across snapshots.
func (keeper *TimeKeeper) Session() uuid.UUID {
	return keeper.session
}

// Durations returns a copy of the configured phase durations.
func (keeper *TimeKeeper) Durations() model.Durations {
	return keeper.durations.Clone()
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Tick re-evaluates the countdown immediately and returns the latest reading.
func (keeper *TimeKeeper) Tick() (Reading, error) {
	var reading Reading
	err := keeper.do(func() { reading = keeper.tick(keeper.clock.Now()) })
	return reading, err
}

// TogglePause ticks once so the display reflects now, then pauses a running
// clock or resumes a paused one.
func (keeper *TimeKeeper) TogglePause() (Reading, error) {
	var reading Reading
	err := keeper.do(func() { reading = keeper.togglePause() })
	return reading, err
}

// RevokeFocus applies an audio-focus change to the live alert, in order with
// every other event delivered to the engine.
func (keeper *TimeKeeper) RevokeFocus(change alert.FocusChange) error {
	return keeper.do(func() { keeper.alerts.ApplyFocusChange(change) })
}

// Snapshot externalizes the engine state.
func (keeper *TimeKeeper) Snapshot() (Snapshot, error) {
	var snapshot Snapshot
	err := keeper.do(func() {
		snapshot = Snapshot{
			SessionID:     keeper.session.String(),
			Phase:         keeper.phase,
			Round:         keeper.round,
			Anchor:        keeper.timing.Anchor,
			PausedElapsed: keeper.timing.PausedElapsed,
			Paused:        keeper.timing.Paused,
			ToggleLabel:   toggleLabel(keeper.timing.Paused),
			Durations:     keeper.durations.Clone(),
			TakenAt:       keeper.clock.Now(),
		}
	})
	return snapshot, err
}

// Stop halts the loop and releases any live alert. No tick runs after Stop
// returns. Observer channels are closed.
func (keeper *TimeKeeper) Stop() {
	keeper.stopOnce.Do(func() {
		close(keeper.stopCh)
		<-keeper.done

		keeper.mu.Lock()
		events := keeper.events
		keeper.events = nil
		keeper.mu.Unlock()
		for _, ch := range events {
			close(ch)
		}

		log.Info().Str("session", keeper.session.String()).Msg("timekeeper stopped")
	})
}

// Done is closed once the loop has exited.
func (keeper *TimeKeeper) Done() <-chan struct{} {
	return keeper.done
}

func (keeper *TimeKeeper) run() {
	defer close(keeper.done)

	ticker := keeper.clock.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	keeper.tick(keeper.clock.Now())
	for {
		select {
		case <-keeper.stopCh:
			keeper.shutdown()
			return
		default:
		}

		select {
		case <-keeper.stopCh:
			keeper.shutdown()
			return
		case <-keeper.wake:
			keeper.drain()
		case <-ticker.Chan():
			keeper.tick(keeper.clock.Now())
		}
	}
}

func (keeper *TimeKeeper) shutdown() {
	keeper.alerts.Release()
	now := keeper.clock.Now()
	keeper.emit(Event{Type: EventStopped, Reading: keeper.reading(now), At: now})
}

// do runs fn on the loop goroutine and waits for it.
func (keeper *TimeKeeper) do(fn func()) error {
	finished := make(chan struct{})
	if !keeper.enqueue(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-keeper.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

// post hands fn to the loop without waiting. Dropped once stopped.
func (keeper *TimeKeeper) post(fn func()) {
	keeper.enqueue(fn)
}

func (keeper *TimeKeeper) enqueue(fn func()) bool {
	keeper.mailMu.Lock()
	defer keeper.mailMu.Unlock()
	select {
	case <-keeper.stopCh:
		return false
	default:
	}
	keeper.mailbox = append(keeper.mailbox, fn)
	select {
	case keeper.wake <- struct{}{}:
	default:
	}
	return true
}

// drain runs queued work in arrival order, including work queued meanwhile.
func (keeper *TimeKeeper) drain() {
	for {
		keeper.mailMu.Lock()
		pending := keeper.mailbox
		keeper.mailbox = nil
		keeper.mailMu.Unlock()
		if len(pending) == 0 {
			return
		}
		for _, fn := range pending {
			fn()
		}
	}
}

func (keeper *TimeKeeper) tick(now time.Time) Reading {
	reading := keeper.reading(now)
	keeper.report(EventTick, reading, now)

	if keeper.timing.Paused || !keeper.timing.Expired(keeper.durations.Of(keeper.phase), now) {
		return reading
	}
	return keeper.advance(now)
}

func (keeper *TimeKeeper) advance(now time.Time) Reading {
	keeper.timing = countdown.Start(now)
	keeper.phase = keeper.phase.Successor()
	if keeper.phase == model.PhaseRound {
		keeper.round++
	}

	log.Info().
		Str("session", keeper.session.String()).
		Str("phase", keeper.phase.String()).
		Int("round", keeper.round).
		Msg("phase advanced")

	keeper.alerts.OnPhaseEntered(keeper.phase)

	reading := keeper.reading(now)
	keeper.report(EventPhaseChange, reading, now)
	return reading
}

func (keeper *TimeKeeper) togglePause() Reading {
	now := keeper.clock.Now()
	keeper.tick(now)

	eventType := EventPaused
	if keeper.timing.Paused {
		keeper.timing = keeper.timing.Resume(now)
		eventType = EventResumed
	} else {
		keeper.timing = keeper.timing.Pause(now)
	}

	log.Debug().
		Str("session", keeper.session.String()).
		Str("phase", keeper.phase.String()).
		Bool("paused", keeper.timing.Paused).
		Msg("pause toggled")

	reading := keeper.reading(now)
	keeper.report(eventType, reading, now)
	return reading
}

func (keeper *TimeKeeper) reading(now time.Time) Reading {
	return Reading{
		Phase:       keeper.phase,
		Round:       keeper.round,
		SecondsLeft: keeper.timing.RemainingSeconds(keeper.durations.Of(keeper.phase), now),
		Paused:      keeper.timing.Paused,
	}
}

func (keeper *TimeKeeper) report(eventType EventType, reading Reading, now time.Time) {
	if keeper.options.OnTick != nil {
		keeper.options.OnTick(reading)
	}
	keeper.emit(Event{Type: eventType, Reading: reading, At: now})
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
