package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"roundtimer/internal/core/model"
	"roundtimer/internal/core/timekeeper"
)

const snapshotFileName = "session.yaml"

// ErrNoSnapshot indicates no saved session exists.
var ErrNoSnapshot = errors.New("no saved session")

type yamlSnapshot struct {
	SessionID     string         `yaml:"session_id"`
	Phase         string         `yaml:"phase"`
	Round         int            `yaml:"round"`
	Anchor        time.Time      `yaml:"anchor"`
	PausedElapsed string         `yaml:"paused_elapsed"`
	Paused        bool           `yaml:"paused"`
	ToggleLabel   string         `yaml:"toggle_label"`
	Durations     map[string]int `yaml:"durations"`
	TakenAt       time.Time      `yaml:"taken_at"`
}

// SaveSnapshot writes the engine state so a later process can resume it.
func (store *Store) SaveSnapshot(snapshot timekeeper.Snapshot) error {
	fileData := yamlSnapshot{
		SessionID:     snapshot.SessionID,
		Phase:         snapshot.Phase.String(),
		Round:         snapshot.Round,
		Anchor:        snapshot.Anchor.UTC(),
		PausedElapsed: snapshot.PausedElapsed.String(),
		Paused:        snapshot.Paused,
		ToggleLabel:   snapshot.ToggleLabel,
		Durations:     make(map[string]int, len(snapshot.Durations)),
		TakenAt:       snapshot.TakenAt.UTC(),
	}
	for phase, duration := range snapshot.Durations {
		fileData.Durations[phase.ConfigKey()] = int(duration / time.Second)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal snapshot yaml: %w", err)
	}
	return store.write(snapshotFileName, serialized)
}

// LoadSnapshot reads a saved session. The result still needs
// timekeeper.Restore to validate it.
func (store *Store) LoadSnapshot() (timekeeper.Snapshot, error) {
	rawData, err := os.ReadFile(store.path(snapshotFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return timekeeper.Snapshot{}, ErrNoSnapshot
		}
		return timekeeper.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	var fileData yamlSnapshot
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return timekeeper.Snapshot{}, fmt.Errorf("parse snapshot yaml: %w", err)
	}

	phase, err := model.ParsePhase(fileData.Phase)
	if err != nil {
		return timekeeper.Snapshot{}, fmt.Errorf("%w: %w", timekeeper.ErrInvalidSnapshot, err)
	}

	pausedElapsed, err := time.ParseDuration(fileData.PausedElapsed)
	if err != nil {
		return timekeeper.Snapshot{}, fmt.Errorf("%w: paused_elapsed: %w", timekeeper.ErrInvalidSnapshot, err)
	}

	durations := make(model.Durations, len(fileData.Durations))
	for _, candidate := range model.Phases() {
		if seconds, ok := fileData.Durations[candidate.ConfigKey()]; ok {
			durations[candidate] = time.Duration(seconds) * time.Second
		}
	}

	return timekeeper.Snapshot{
		SessionID:     fileData.SessionID,
		Phase:         phase,
		Round:         fileData.Round,
		Anchor:        fileData.Anchor,
		PausedElapsed: pausedElapsed,
		Paused:        fileData.Paused,
		ToggleLabel:   fileData.ToggleLabel,
		Durations:     durations,
		TakenAt:       fileData.TakenAt,
	}, nil
}

// ClearSnapshot removes a saved session.
func (store *Store) ClearSnapshot() error {
	if err := os.Remove(store.path(snapshotFileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}
