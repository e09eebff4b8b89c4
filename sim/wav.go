package sim

import (
	"errors"
	"io"

	"github.com/go-audio/wav"

	"adcfft/core"
)

var (
	ErrInvalidWAV  = errors.New("sim: not a PCM WAV file")
	ErrWAVBitDepth = errors.New("sim: unsupported WAV bit depth")
	ErrNoSamples   = errors.New("sim: no samples")
)

// FromSamples plays samples back in order, wrapping around at the end.
// An empty slice is ErrNoSamples.
func FromSamples(samples []uint16) (Waveform, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return func(n int) uint16 {
		return samples[n%len(samples)]
	}, nil
}

// LoadWAV decodes a 16, 24 or 32-bit PCM WAV file and returns its first
// channel as a waveform, offset from signed to unsigned and scaled to the
// given ADC resolution.
func LoadWAV(r io.ReadSeeker, resolution uint32) (Waveform, error) {
	if resolution < 8 || resolution > 16 {
		return nil, core.ErrInvalidResolution
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	depth := buf.SourceBitDepth
	switch depth {
	case 16, 24, 32:
	default:
		return nil, ErrWAVBitDepth
	}

	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 1 {
		channels = buf.Format.NumChannels
	}
	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, ErrNoSamples
	}

	shift := uint(depth) - uint(resolution)
	offset := int64(1) << (depth - 1)
	samples := make([]uint16, frames)
	for i := range samples {
		v := int64(buf.Data[i*channels]) + offset
		samples[i] = uint16(v >> shift)
	}
	return FromSamples(samples)
}
