package alert

import "sync"

// FocusChange is an audio-focus transition reported by the host platform.
type FocusChange string

const (
	FocusGain                 FocusChange = "gain"
	FocusLoss                 FocusChange = "loss"
	FocusLossTransient        FocusChange = "loss_transient"
	FocusLossTransientCanDuck FocusChange = "loss_transient_can_duck"
)

// FocusListener receives focus transitions for a granted request.
type FocusListener interface {
	OnFocusChange(change FocusChange)
}

// FocusManager grants exclusive, transient, duckable use of the audio output.
type FocusManager interface {
	RequestFocus(listener FocusListener) bool
	AbandonFocus(listener FocusListener)
}

// Exclusive is an in-process FocusManager for platforms without a system
// audio-focus service. One listener holds focus at a time; a holder may
// request again without losing it.
type Exclusive struct {
	mu     sync.Mutex
	holder FocusListener
}

// NewExclusive creates an idle focus arbiter.
func NewExclusive() *Exclusive {
	return &Exclusive{}
}

// RequestFocus grants focus when it is free or already held by listener.
func (exclusive *Exclusive) RequestFocus(listener FocusListener) bool {
	exclusive.mu.Lock()
	defer exclusive.mu.Unlock()
	if exclusive.holder != nil && exclusive.holder != listener {
		return false
	}
	exclusive.holder = listener
	return true
}

// AbandonFocus releases focus if listener holds it.
func (exclusive *Exclusive) AbandonFocus(listener FocusListener) {
	exclusive.mu.Lock()
	defer exclusive.mu.Unlock()
	if exclusive.holder == listener {
		exclusive.holder = nil
	}
}

// Revoke notifies the current holder of change. A permanent loss also frees
// the focus.
func (exclusive *Exclusive) Revoke(change FocusChange) {
	exclusive.mu.Lock()
	holder := exclusive.holder
	if change == FocusLoss {
		exclusive.holder = nil
	}
	exclusive.mu.Unlock()

	if holder != nil {
		holder.OnFocusChange(change)
	}
}

// Held reports whether any listener currently holds focus.
func (exclusive *Exclusive) Held() bool {
	exclusive.mu.Lock()
	defer exclusive.mu.Unlock()
	return exclusive.holder != nil
}
