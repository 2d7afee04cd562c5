package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/model"
	"roundtimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	PrepSeconds  *int   `yaml:"prep_seconds"`
	RoundSeconds *int   `yaml:"round_seconds"`
	RestSeconds  *int   `yaml:"rest_seconds"`
	RoundTone    string `yaml:"round_tone,omitempty"`
	RestTone     string `yaml:"rest_tone,omitempty"`
	KeepAwake    *bool  `yaml:"keep_awake"`
}

// Store persists files under one configuration directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// ForApp creates a Store in the user configuration directory.
func ForApp(appName string) (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return New(filepath.Join(configDir, appName)), nil
}

// Dir returns the directory holding the files.
func (store *Store) Dir() string {
	return store.dir
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func (store *Store) LoadSettings() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path(settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func (store *Store) SaveSettings(settings preferences.Settings) error {
	fileData := yamlSettings{
		PrepSeconds:  secondsOf(settings.Durations, model.PhasePrep),
		RoundSeconds: secondsOf(settings.Durations, model.PhaseRound),
		RestSeconds:  secondsOf(settings.Durations, model.PhaseRest),
		RoundTone:    string(settings.RoundTone),
		RestTone:     string(settings.RestTone),
		KeepAwake:    &settings.KeepAwake,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	return store.write(settingsFileName, serialized)
}

func (store *Store) path(name string) string {
	return filepath.Join(store.dir, name)
}

func (store *Store) write(name string, data []byte) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	target := store.path(name)
	temp := target + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(temp, target); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func secondsOf(durations model.Durations, phase model.Phase) *int {
	duration, ok := durations[phase]
	if !ok {
		return nil
	}
	seconds := int(duration / time.Second)
	return &seconds
}

// applyYamlSettings keeps defaults for absent or out-of-range values.
func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	apply := func(phase model.Phase, seconds *int) {
		if seconds == nil || *seconds < 0 {
			return
		}
		duration := time.Duration(*seconds) * time.Second
		if duration > phase.MaxDuration() {
			return
		}
		settings.Durations[phase] = duration
	}
	apply(model.PhasePrep, fileData.PrepSeconds)
	apply(model.PhaseRound, fileData.RoundSeconds)
	apply(model.PhaseRest, fileData.RestSeconds)

	if fileData.RoundTone != "" {
		settings.RoundTone = alert.Tone(fileData.RoundTone)
	}
	if fileData.RestTone != "" {
		settings.RestTone = alert.Tone(fileData.RestTone)
	}
	if fileData.KeepAwake != nil {
		settings.KeepAwake = *fileData.KeepAwake
	}
}
