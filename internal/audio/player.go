// Package audio plays alert tones through the system audio device.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"

	"roundtimer/internal/core/alert"
)

// ErrDeviceUnavailable indicates the audio context could not be created.
var ErrDeviceUnavailable = errors.New("audio device unavailable")

const pollInterval = 10 * time.Millisecond

// The output context is process-wide; oto allows only one.
var (
	globalContext     *oto.Context
	globalContextErr  error
	globalContextOnce sync.Once
)

func outputContext() (*oto.Context, error) {
	globalContextOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			globalContextErr = fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
			log.Warn().Err(err).Msg("audio context init failed")
			return
		}
		// Wait for the hardware audio devices to be ready
		<-ready
		globalContext = ctx
		log.Debug().Int("sample_rate", SampleRate).Msg("audio context ready")
	})
	return globalContext, globalContextErr
}

// Player implements alert.Player on top of oto. Decoded tones are cached.
type Player struct {
	mu    sync.Mutex
	cache map[alert.Tone][]byte
}

// NewPlayer creates a Player. The audio device is opened on first use.
func NewPlayer() *Player {
	return &Player{cache: make(map[alert.Tone][]byte)}
}

// Play starts tone and returns immediately.
func (player *Player) Play(tone alert.Tone, onDone func()) (alert.Handle, error) {
	pcm, err := player.load(tone)
	if err != nil {
		return nil, err
	}
	ctx, err := outputContext()
	if err != nil {
		return nil, err
	}

	playback := &Playback{
		output: ctx.NewPlayer(bytes.NewReader(pcm)),
		stopCh: make(chan struct{}),
		onDone: onDone,
	}
	playback.output.Play()
	go playback.watch()
	return playback, nil
}

func (player *Player) load(tone alert.Tone) ([]byte, error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if pcm, ok := player.cache[tone]; ok {
		return pcm, nil
	}

	var pcm []byte
	if spec, ok := builtinTones[tone]; ok {
		pcm = spec.Render()
	} else {
		data, err := os.ReadFile(string(tone))
		if err != nil {
			return nil, fmt.Errorf("read tone %s: %w", tone, err)
		}
		format, samples, err := parseWAV(data)
		if err != nil {
			return nil, fmt.Errorf("parse tone %s: %w", tone, err)
		}
		if err := format.compatible(); err != nil {
			return nil, fmt.Errorf("tone %s: %w", tone, err)
		}
		pcm = samples
	}
	player.cache[tone] = pcm
	return pcm, nil
}

// Playback is one playing tone. It implements alert.Handle.
type Playback struct {
	mu      sync.Mutex
	output  *oto.Player
	paused  bool
	stopped bool
	stopCh  chan struct{}
	onDone  func()
}

// watch polls the oto player until the tone ends or Stop is called.
func (playback *Playback) watch() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-playback.stopCh:
			return
		case <-ticker.C:
		}

		playback.mu.Lock()
		finished := !playback.stopped && !playback.paused && !playback.output.IsPlaying()
		if finished {
			playback.stopped = true
			close(playback.stopCh)
			if err := playback.output.Close(); err != nil {
				log.Warn().Err(err).Msg("close audio player")
			}
		}
		playback.mu.Unlock()

		if finished {
			if playback.onDone != nil {
				playback.onDone()
			}
			return
		}
	}
}

// Pause suspends output without releasing it.
func (playback *Playback) Pause() {
	playback.mu.Lock()
	defer playback.mu.Unlock()
	if playback.stopped || playback.paused {
		return
	}
	playback.paused = true
	playback.output.Pause()
}

// Resume continues a paused tone.
func (playback *Playback) Resume() {
	playback.mu.Lock()
	defer playback.mu.Unlock()
	if playback.stopped || !playback.paused {
		return
	}
	playback.paused = false
	playback.output.Play()
}

// SetVolume sets the output volume in [0, 1].
func (playback *Playback) SetVolume(volume float64) {
	playback.mu.Lock()
	defer playback.mu.Unlock()
	if playback.stopped {
		return
	}
	playback.output.SetVolume(volume)
}

// Stop ends playback. onDone is not called.
func (playback *Playback) Stop() {
	playback.mu.Lock()
	defer playback.mu.Unlock()
	if playback.stopped {
		return
	}
	playback.stopped = true
	close(playback.stopCh)
	playback.output.Pause()
	if err := playback.output.Close(); err != nil {
		log.Warn().Err(err).Msg("close audio player")
	}
}
