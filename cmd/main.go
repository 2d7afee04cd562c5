package main

import (
	"errors"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"roundtimer/internal/audio"
	"roundtimer/internal/core/alert"
	"roundtimer/internal/core/model"
	"roundtimer/internal/core/timekeeper"
	"roundtimer/internal/platform"
	"roundtimer/internal/session"
	"roundtimer/internal/storage"
	"roundtimer/internal/ui/clock"
	"roundtimer/internal/ui/preferences"
	"roundtimer/internal/ui/tray"
)

const (
	appName = "RoundTimer"
	appID   = "com.roundtimer.app"
)

// CLI holds command line flags. Durations left at -1 keep the saved value.
type CLI struct {
	Prep      int    `help:"Prep duration in seconds." default:"-1"`
	Round     int    `help:"Round duration in seconds." default:"-1"`
	Rest      int    `help:"Rest duration in seconds." default:"-1"`
	Fresh     bool   `help:"Start a new workout instead of resuming the saved one."`
	ConfigDir string `name:"config-dir" help:"Directory for settings and the saved session." type:"path"`
	Verbose   bool   `short:"v" help:"Enable debug logging."`
}

// Apply overrides settings with the durations given on the command line.
func (cli CLI) Apply(settings preferences.Settings) preferences.Settings {
	overrides := map[model.Phase]int{
		model.PhasePrep:  cli.Prep,
		model.PhaseRound: cli.Round,
		model.PhaseRest:  cli.Rest,
	}
	for phase, seconds := range overrides {
		if seconds < 0 {
			continue
		}
		settings = settings.WithDuration(phase, time.Duration(seconds)*time.Second)
	}
	return settings
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("roundtimer"),
		kong.Description("Interval training timer cycling prep, round and rest phases."),
	)
	setupLogging(cli.Verbose)

	if err := run(cli); err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Info().Err(err).Msg("handed over to running instance")
			return
		}
		log.Error().Err(err).Msg("round timer failed")
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

func run(cli CLI) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		if err := guard.Release(); err != nil {
			log.Warn().Err(err).Msg("release single instance")
		}
	}()

	store, err := openStore(cli.ConfigDir)
	if err != nil {
		return err
	}
	settings, err := store.LoadSettings()
	if err != nil {
		log.Warn().Err(err).Str("dir", store.Dir()).Msg("using default settings")
		settings = preferences.DefaultSettings()
	}
	settings = cli.Apply(settings)

	fyneApp := app.NewWithID(appID)

	var host *Host
	controller := session.New(store, timekeeper.Options{
		Focus:  alert.NewExclusive(),
		Player: audio.NewPlayer(),
		Tones:  settings.Tones(),
	}, func(engine uint64, reading timekeeper.Reading) {
		fyne.Do(func() { host.Render(engine, reading) })
	})
	host = &Host{
		app:        fyneApp,
		store:      store,
		controller: controller,
		settings:   settings,
	}

	host.clock = clock.New(fyneApp, settings.KeepAwake, clock.Callbacks{
		OnTogglePause: host.TogglePause,
		OnStop:        host.Stop,
		OnStart:       host.Start,
		OnKeepAwake:   host.SetKeepAwake,
		OnClose:       host.Close,
	})
	host.prefs = preferences.New(fyneApp, settings, host.ApplySettings)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		host.desktop = desktopApp
		host.tray = tray.New(desktopApp, tray.Callbacks{
			OnShow:        host.clock.Show,
			OnPreferences: host.prefs.Show,
			OnTogglePause: host.TogglePause,
			OnSilence:     host.Silence,
			OnQuit:        host.Quit,
		})
	} else {
		log.Debug().Msg("system tray unsupported on this platform")
	}

	guard.OnActivate(func() {
		fyne.Do(host.clock.Show)
	})

	host.Launch(cli.Fresh)
	host.clock.Show()
	fyneApp.Run()

	host.Persist()
	return nil
}

func openStore(dir string) (*storage.Store, error) {
	if dir != "" {
		return storage.New(dir), nil
	}
	return storage.ForApp(appName)
}
