package audio

import (
	"encoding/binary"
	"math"
	"time"

	"roundtimer/internal/core/alert"
)

// Output format shared by every tone.
const (
	SampleRate     = 44100
	Channels       = 2
	BytesPerSample = 2
)

const rampDuration = 5 * time.Millisecond

// Beep is a run of identical sine pulses.
type Beep struct {
	Frequency float64
	Length    time.Duration
	Gap       time.Duration
	Count     int
	Amplitude float64
}

var builtinTones = map[alert.Tone]Beep{
	alert.ToneRound: {Frequency: 880, Length: 180 * time.Millisecond, Gap: 90 * time.Millisecond, Count: 3, Amplitude: 0.6},
	alert.ToneRest:  {Frequency: 523.25, Length: 600 * time.Millisecond, Count: 1, Amplitude: 0.6},
}

// Render produces interleaved signed 16-bit little-endian PCM.
func (beep Beep) Render() []byte {
	pulse := frames(beep.Length)
	gap := frames(beep.Gap)
	ramp := frames(rampDuration)
	count := max(beep.Count, 1)

	total := count*pulse + (count-1)*gap
	out := make([]byte, total*Channels*BytesPerSample)
	offset := 0
	for n := range count {
		for i := range pulse {
			envelope := 1.0
			if ramp > 0 {
				envelope = math.Min(1, math.Min(float64(i)/float64(ramp), float64(pulse-i)/float64(ramp)))
			}
			value := beep.Amplitude * envelope * math.Sin(2*math.Pi*beep.Frequency*float64(i)/SampleRate)
			sample := uint16(int16(value * math.MaxInt16))
			for range Channels {
				binary.LittleEndian.PutUint16(out[offset:], sample)
				offset += BytesPerSample
			}
		}
		if n < count-1 {
			offset += gap * Channels * BytesPerSample
		}
	}
	return out
}

// Duration returns the rendered length.
func (beep Beep) Duration() time.Duration {
	count := max(beep.Count, 1)
	return time.Duration(count)*beep.Length + time.Duration(count-1)*beep.Gap
}

func frames(duration time.Duration) int {
	return int(duration * SampleRate / time.Second)
}
