package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtimer/internal/core/alert"
)

func TestBuiltinTonesDiffer(t *testing.T) {
	round, ok := builtinTones[alert.ToneRound]
	require.True(t, ok)
	rest, ok := builtinTones[alert.ToneRest]
	require.True(t, ok)
	assert.NotEqual(t, round, rest)
}

func TestRenderLength(t *testing.T) {
	beep := Beep{Frequency: 440, Length: 100 * time.Millisecond, Gap: 50 * time.Millisecond, Count: 3, Amplitude: 0.5}
	pcm := beep.Render()

	assert.Equal(t, 400*time.Millisecond, beep.Duration())
	assert.Len(t, pcm, frames(beep.Duration())*Channels*BytesPerSample)
}

func TestRenderRampsAndGaps(t *testing.T) {
	beep := Beep{Frequency: 440, Length: 100 * time.Millisecond, Gap: 50 * time.Millisecond, Count: 2, Amplitude: 0.5}
	pcm := beep.Render()
	sample := func(frame int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[frame*Channels*BytesPerSample:]))
	}

	assert.Equal(t, int16(0), sample(0), "pulse starts silent")
	gapStart := frames(beep.Length)
	for frame := gapStart; frame < gapStart+frames(beep.Gap); frame++ {
		require.Equal(t, int16(0), sample(frame))
	}

	var peak int16
	for frame := 0; frame < frames(beep.Length); frame++ {
		if value := sample(frame); value > peak {
			peak = value
		}
	}
	assert.InDelta(t, 0.5*32767, float64(peak), 400)
}

func TestRenderDuplicatesChannels(t *testing.T) {
	pcm := builtinTones[alert.ToneRest].Render()
	for offset := 0; offset < len(pcm); offset += Channels * BytesPerSample {
		require.Equal(t, pcm[offset:offset+2], pcm[offset+2:offset+4])
	}
}
