package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownPhase indicates a phase value outside the catalog.
var ErrUnknownPhase = errors.New("unknown phase")

// Phase identifies one stage of the workout cycle.
type Phase string

const (
	PhasePrep  Phase = "prep"
	PhaseRound Phase = "round"
	PhaseRest  Phase = "rest"
)

// PhaseSpec is the immutable catalog entry for a phase.
type PhaseSpec struct {
	Label           string
	ConfigKey       string
	DefaultDuration time.Duration
	Step            time.Duration
	MaxDuration     time.Duration
	Next            Phase
}

var catalog = map[Phase]PhaseSpec{
	PhasePrep: {
		Label:           "Prepare",
		ConfigKey:       "PREP_TIME",
		DefaultDuration: 30 * time.Second,
		Step:            15 * time.Second,
		MaxDuration:     120 * time.Second,
		Next:            PhaseRound,
	},
	PhaseRound: {
		Label:           "Round",
		ConfigKey:       "ROUND_TIME",
		DefaultDuration: 120 * time.Second,
		Step:            30 * time.Second,
		MaxDuration:     300 * time.Second,
		Next:            PhaseRest,
	},
	PhaseRest: {
		Label:           "Rest",
		ConfigKey:       "REST_TIME",
		DefaultDuration: 60 * time.Second,
		Step:            30 * time.Second,
		MaxDuration:     300 * time.Second,
		Next:            PhaseRound,
	},
}

// Phases returns every phase in cycle order.
func Phases() []Phase {
	return []Phase{PhasePrep, PhaseRound, PhaseRest}
}

// ParsePhase converts a stored phase name back into a Phase.
func ParsePhase(value string) (Phase, error) {
	phase := Phase(strings.ToLower(strings.TrimSpace(value)))
	if !phase.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, value)
	}
	return phase, nil
}

// Valid reports whether the phase is part of the catalog.
func (phase Phase) Valid() bool {
	_, ok := catalog[phase]
	return ok
}

// Spec returns the catalog entry. Unknown phases yield the zero PhaseSpec.
func (phase Phase) Spec() PhaseSpec {
	return catalog[phase]
}

// Successor returns the phase entered when this one runs out.
// Prep is left once; Round and Rest alternate forever.
func (phase Phase) Successor() Phase {
	return catalog[phase].Next
}

// DefaultDuration returns the duration used when none is configured.
func (phase Phase) DefaultDuration() time.Duration {
	return catalog[phase].DefaultDuration
}

// Step returns the snapping granularity for configuration input.
func (phase Phase) Step() time.Duration {
	return catalog[phase].Step
}

// MaxDuration returns the largest configurable duration.
func (phase Phase) MaxDuration() time.Duration {
	return catalog[phase].MaxDuration
}

// Label returns the display label.
func (phase Phase) Label() string {
	return catalog[phase].Label
}

// ConfigKey returns the key used when persisting this phase's duration.
func (phase Phase) ConfigKey() string {
	return catalog[phase].ConfigKey
}

func (phase Phase) String() string {
	return string(phase)
}
