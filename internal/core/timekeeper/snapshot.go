package timekeeper

import (
	"errors"
	"fmt"
	"time"

	"roundtimer/internal/core/model"
)

// ErrInvalidSnapshot indicates a snapshot that cannot be restored. Callers
// fall back to a fresh Start.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Control labels for the start/pause button.
const (
	LabelPause = "Pause"
	LabelStart = "Start"
)

// Snapshot is the externalized engine state.
type Snapshot struct {
	SessionID     string
	Phase         model.Phase
	Round         int
	Anchor        time.Time
	PausedElapsed time.Duration
	Paused        bool
	ToggleLabel   string
	Durations     model.Durations
	TakenAt       time.Time
}

// Validate rejects stale or corrupt snapshots.
func (snapshot Snapshot) Validate() error {
	switch {
	case !snapshot.Phase.Valid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidSnapshot, model.ErrUnknownPhase, string(snapshot.Phase))
	case snapshot.Round < 0:
		return fmt.Errorf("%w: negative round %d", ErrInvalidSnapshot, snapshot.Round)
	case snapshot.Phase != model.PhasePrep && snapshot.Round == 0:
		return fmt.Errorf("%w: phase %s before first round", ErrInvalidSnapshot, snapshot.Phase)
	case snapshot.Phase == model.PhasePrep && snapshot.Round != 0:
		return fmt.Errorf("%w: prep after round %d", ErrInvalidSnapshot, snapshot.Round)
	case snapshot.Anchor.IsZero():
		return fmt.Errorf("%w: missing anchor", ErrInvalidSnapshot)
	case snapshot.PausedElapsed < 0:
		return fmt.Errorf("%w: negative paused elapsed %s", ErrInvalidSnapshot, snapshot.PausedElapsed)
	case !snapshot.Paused && snapshot.PausedElapsed != 0:
		return fmt.Errorf("%w: paused elapsed on running snapshot", ErrInvalidSnapshot)
	}
	if snapshot.Durations != nil {
		if err := snapshot.Durations.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
	}
	return nil
}

func toggleLabel(paused bool) string {
	if paused {
		return LabelStart
	}
	return LabelPause
}
