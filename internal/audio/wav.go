package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotWAV indicates data without a RIFF/WAVE header.
	ErrNotWAV = errors.New("not a wav file")
	// ErrUnsupportedFormat indicates a WAV that does not match the output format.
	ErrUnsupportedFormat = errors.New("unsupported wav format")
)

// wavFormat holds WAV file format information
type wavFormat struct {
	AudioFormat int
	SampleRate  int
	Channels    int
	BitDepth    int
}

func (format wavFormat) compatible() error {
	if format.AudioFormat != 1 || format.BitDepth != 16 || format.SampleRate != SampleRate || format.Channels != Channels {
		return fmt.Errorf("%w: pcm=%t %dHz %dch %dbit, want 16bit %dHz %dch",
			ErrUnsupportedFormat, format.AudioFormat == 1, format.SampleRate, format.Channels, format.BitDepth, SampleRate, Channels)
	}
	return nil
}

// parseWAV returns the format and the raw samples of the data chunk.
func parseWAV(data []byte) (wavFormat, []byte, error) {
	var format wavFormat
	reader := bytes.NewReader(data)

	header := make([]byte, 12)
	if _, err := io.ReadFull(reader, header); err != nil {
		return format, nil, ErrNotWAV
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return format, nil, ErrNotWAV
	}

	seenFormat := false
	for {
		var chunk struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(reader, binary.LittleEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return format, nil, fmt.Errorf("%w: missing data chunk", ErrNotWAV)
			}
			return format, nil, fmt.Errorf("read chunk header: %w", err)
		}

		switch string(chunk.ID[:]) {
		case "fmt ":
			var fmtChunk struct {
				AudioFormat   uint16
				Channels      uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if chunk.Size < 16 {
				return format, nil, fmt.Errorf("%w: short fmt chunk", ErrNotWAV)
			}
			if err := binary.Read(reader, binary.LittleEndian, &fmtChunk); err != nil {
				return format, nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			format = wavFormat{
				AudioFormat: int(fmtChunk.AudioFormat),
				SampleRate:  int(fmtChunk.SampleRate),
				Channels:    int(fmtChunk.Channels),
				BitDepth:    int(fmtChunk.BitsPerSample),
			}
			seenFormat = true
			if _, err := reader.Seek(int64(chunk.Size-16+chunk.Size%2), io.SeekCurrent); err != nil {
				return format, nil, fmt.Errorf("skip fmt extension: %w", err)
			}
		case "data":
			if !seenFormat {
				return format, nil, fmt.Errorf("%w: data before fmt", ErrNotWAV)
			}
			samples := make([]byte, chunk.Size)
			if _, err := io.ReadFull(reader, samples); err != nil {
				return format, nil, fmt.Errorf("read data chunk: %w", err)
			}
			return format, samples, nil
		default:
			// Chunks are word aligned.
			if _, err := reader.Seek(int64(chunk.Size+chunk.Size%2), io.SeekCurrent); err != nil {
				return format, nil, fmt.Errorf("skip chunk: %w", err)
			}
		}
	}
}
