package alert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtimer/internal/core/model"
)

type fakeHandle struct {
	tone    Tone
	onDone  func()
	paused  bool
	stopped bool
	volume  float64
	resumes int
}

func (handle *fakeHandle) Pause() { handle.paused = true }

func (handle *fakeHandle) Resume() {
	handle.paused = false
	handle.resumes++
}

func (handle *fakeHandle) Stop() { handle.stopped = true }

func (handle *fakeHandle) SetVolume(volume float64) { handle.volume = volume }

type fakePlayer struct {
	handles []*fakeHandle
	err     error
}

func (player *fakePlayer) Play(tone Tone, onDone func()) (Handle, error) {
	if player.err != nil {
		return nil, player.err
	}
	handle := &fakeHandle{tone: tone, onDone: onDone, volume: FullVolume}
	player.handles = append(player.handles, handle)
	return handle, nil
}

func (player *fakePlayer) last() *fakeHandle {
	return player.handles[len(player.handles)-1]
}

type denyingFocus struct{ requests int }

func (focus *denyingFocus) RequestFocus(FocusListener) bool {
	focus.requests++
	return false
}

func (focus *denyingFocus) AbandonFocus(FocusListener) {}

// queue defers dispatched callbacks until drained, standing in for the
// engine loop.
type queue struct{ pending []func() }

func (q *queue) dispatch(fn func()) { q.pending = append(q.pending, fn) }

func (q *queue) drain() {
	for len(q.pending) > 0 {
		fn := q.pending[0]
		q.pending = q.pending[1:]
		fn()
	}
}

func newCoordinator(t *testing.T) (*Coordinator, *fakePlayer, *Exclusive, *queue) {
	t.Helper()
	player := &fakePlayer{}
	focus := NewExclusive()
	q := &queue{}
	coordinator := New(Config{Focus: focus, Player: player, Dispatch: q.dispatch})
	return coordinator, player, focus, q
}

func TestPhaseEnteredPlaysPhaseTone(t *testing.T) {
	coordinator, player, focus, _ := newCoordinator(t)

	coordinator.OnPhaseEntered(model.PhaseRound)
	require.Len(t, player.handles, 1)
	assert.Equal(t, ToneRound, player.last().tone)
	assert.True(t, focus.Held())
	assert.True(t, coordinator.Active())

	coordinator.OnPhaseEntered(model.PhaseRest)
	require.Len(t, player.handles, 2)
	assert.Equal(t, ToneRest, player.last().tone)
	assert.True(t, player.handles[0].stopped, "previous alert is superseded")
}

func TestCompletionReleasesFocusOnOwnerContext(t *testing.T) {
	coordinator, player, focus, q := newCoordinator(t)

	coordinator.OnPhaseEntered(model.PhaseRound)
	player.last().onDone()
	assert.True(t, coordinator.Active(), "completion waits for dispatch")

	q.drain()
	assert.False(t, coordinator.Active())
	assert.False(t, focus.Held())
}

func TestStaleCompletionIsIgnored(t *testing.T) {
	coordinator, player, focus, q := newCoordinator(t)

	coordinator.OnPhaseEntered(model.PhaseRound)
	first := player.last()
	coordinator.OnPhaseEntered(model.PhaseRest)

	first.onDone()
	q.drain()
	assert.True(t, coordinator.Active())
	assert.True(t, focus.Held())
}

func TestFocusDeniedSkipsAlert(t *testing.T) {
	player := &fakePlayer{}
	focus := &denyingFocus{}
	coordinator := New(Config{Focus: focus, Player: player})

	coordinator.OnPhaseEntered(model.PhaseRound)
	coordinator.OnPhaseEntered(model.PhaseRest)

	assert.Equal(t, 2, focus.requests)
	assert.Empty(t, player.handles)
	assert.False(t, coordinator.Active())
}

func TestPlayerFailureAbandonsFocus(t *testing.T) {
	player := &fakePlayer{err: errors.New("no device")}
	focus := NewExclusive()
	coordinator := New(Config{Focus: focus, Player: player})

	coordinator.OnPhaseEntered(model.PhaseRound)
	assert.False(t, coordinator.Active())
	assert.False(t, focus.Held())
}

func TestMissingToneSkipsAlert(t *testing.T) {
	player := &fakePlayer{}
	focus := NewExclusive()
	coordinator := New(Config{Focus: focus, Player: player, Tones: Tones{model.PhaseRound: ToneRound}})

	coordinator.OnPhaseEntered(model.PhaseRest)
	assert.Empty(t, player.handles)
	assert.False(t, focus.Held())
}

func TestFocusChangePolicy(t *testing.T) {
	coordinator, player, focus, q := newCoordinator(t)
	coordinator.OnPhaseEntered(model.PhaseRound)
	handle := player.last()

	focus.Revoke(FocusLossTransientCanDuck)
	q.drain()
	assert.Equal(t, DuckedVolume, handle.volume)

	focus.Revoke(FocusLossTransient)
	q.drain()
	assert.True(t, handle.paused)
	assert.True(t, coordinator.Active(), "transient loss keeps the handle")

	focus.Revoke(FocusGain)
	q.drain()
	assert.False(t, handle.paused)
	assert.Equal(t, 1, handle.resumes)
	assert.Equal(t, FullVolume, handle.volume)

	focus.Revoke(FocusGain)
	q.drain()
	assert.Equal(t, 1, handle.resumes, "gain does not restart a playing alert")

	focus.Revoke(FocusLoss)
	q.drain()
	assert.True(t, handle.stopped)
	assert.False(t, coordinator.Active())
	assert.False(t, focus.Held())
}

func TestQueuedFocusChangesApplyInOrder(t *testing.T) {
	coordinator, player, focus, q := newCoordinator(t)
	coordinator.OnPhaseEntered(model.PhaseRound)
	handle := player.last()

	focus.Revoke(FocusLossTransient)
	focus.Revoke(FocusGain)
	q.drain()

	assert.False(t, handle.paused)
	assert.Equal(t, 1, handle.resumes)
	assert.True(t, focus.Held())
}

func TestStaleFocusLossSparesNextAlert(t *testing.T) {
	coordinator, player, focus, q := newCoordinator(t)
	coordinator.OnPhaseEntered(model.PhaseRound)
	first := player.last()

	focus.Revoke(FocusLoss)
	coordinator.OnPhaseEntered(model.PhaseRest)
	second := player.last()
	q.drain()

	assert.True(t, first.stopped)
	assert.False(t, second.stopped, "loss aimed at the previous alert")
	assert.True(t, coordinator.Active())
	assert.True(t, focus.Held())
}

func TestFocusChangeWithoutAlertIsIgnored(t *testing.T) {
	coordinator, _, _, _ := newCoordinator(t)
	assert.NotPanics(t, func() {
		coordinator.ApplyFocusChange(FocusLoss)
		coordinator.ApplyFocusChange(FocusGain)
	})
}

func TestReleaseStopsAlert(t *testing.T) {
	coordinator, player, focus, _ := newCoordinator(t)
	coordinator.OnPhaseEntered(model.PhaseRound)

	coordinator.Release()
	assert.True(t, player.last().stopped)
	assert.False(t, focus.Held())
	coordinator.Release()
}

func TestDisabledWithoutCollaborators(t *testing.T) {
	coordinator := New(Config{})
	assert.NotPanics(t, func() {
		coordinator.OnPhaseEntered(model.PhaseRound)
		coordinator.Release()
	})
	assert.False(t, coordinator.Active())
}
