package clock

import (
	"fmt"

	"roundtimer/internal/core/timekeeper"
)

// FormatRemaining renders whole seconds as MM:SS.
func FormatRemaining(secondsLeft int) string {
	if secondsLeft < 0 {
		secondsLeft = 0
	}
	return fmt.Sprintf("%02d:%02d", secondsLeft/60, secondsLeft%60)
}

// RoundLabel is empty until the first round starts.
func RoundLabel(round int) string {
	if round <= 0 {
		return ""
	}
	return fmt.Sprintf("Round %d", round)
}

// ToggleLabel names the start/pause control for a reading.
func ToggleLabel(reading timekeeper.Reading) string {
	if reading.Paused {
		return timekeeper.LabelStart
	}
	return timekeeper.LabelPause
}

// Status is a one-line summary used by the tray.
func Status(reading timekeeper.Reading) string {
	status := fmt.Sprintf("%s %s", reading.Phase.Label(), FormatRemaining(reading.SecondsLeft))
	if label := RoundLabel(reading.Round); label != "" {
		status = fmt.Sprintf("%s · %s", label, status)
	}
	if reading.Paused {
		status += " (paused)"
	}
	return status
}
