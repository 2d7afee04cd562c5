package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingDuration indicates a phase has no configured duration.
	ErrMissingDuration = errors.New("missing phase duration")
	// ErrNegativeDuration indicates a configured duration below zero.
	ErrNegativeDuration = errors.New("negative phase duration")
)

// Durations maps each phase to its configured length.
type Durations map[Phase]time.Duration

// DefaultDurations returns the catalog defaults for every phase.
func DefaultDurations() Durations {
	durations := make(Durations, len(catalog))
	for _, phase := range Phases() {
		durations[phase] = phase.DefaultDuration()
	}
	return durations
}

// Seconds builds Durations from whole-second values.
func Seconds(prep, round, rest int) Durations {
	return Durations{
		PhasePrep:  time.Duration(prep) * time.Second,
		PhaseRound: time.Duration(round) * time.Second,
		PhaseRest:  time.Duration(rest) * time.Second,
	}
}

// Validate checks that every phase has a present, non-negative entry.
func (durations Durations) Validate() error {
	for _, phase := range Phases() {
		duration, ok := durations[phase]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingDuration, phase)
		}
		if duration < 0 {
			return fmt.Errorf("%w: %s=%s", ErrNegativeDuration, phase, duration)
		}
	}
	for phase := range durations {
		if !phase.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownPhase, string(phase))
		}
	}
	return nil
}

// Of returns the configured duration for a phase.
func (durations Durations) Of(phase Phase) time.Duration {
	return durations[phase]
}

// Clone returns an independent copy.
func (durations Durations) Clone() Durations {
	clone := make(Durations, len(durations))
	for phase, duration := range durations {
		clone[phase] = duration
	}
	return clone
}

// Snap clamps a requested duration to [0, MaxDuration] and rounds it to the
// nearest multiple of the phase step. Used by configuration input only.
func Snap(phase Phase, requested time.Duration) time.Duration {
	spec := phase.Spec()
	if requested < 0 {
		requested = 0
	}
	if spec.MaxDuration > 0 && requested > spec.MaxDuration {
		requested = spec.MaxDuration
	}
	if spec.Step <= 0 {
		return requested
	}
	return requested.Round(spec.Step)
}
