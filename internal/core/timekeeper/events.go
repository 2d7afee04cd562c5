package timekeeper

import (
	"time"

	"roundtimer/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase_change"
	EventPaused      EventType = "paused"
	EventResumed     EventType = "resumed"
	EventStopped     EventType = "stopped"
)

// Reading is what the host renders: the sole source of truth for display.
type Reading struct {
	Phase       model.Phase
	Round       int
	SecondsLeft int
	Paused      bool
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type    EventType
	Reading Reading
	At      time.Time
}
