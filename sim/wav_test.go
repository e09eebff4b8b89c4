package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adcfft/core"
)

func writeWAV(t *testing.T, depth, channels int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 48000, depth, channels, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 48000},
		Data:           data,
		SourceBitDepth: depth,
	}))
	require.NoError(t, enc.Close())
	return path
}

func TestLoadWAV16To12Bit(t *testing.T) {
	path := writeWAV(t, 16, 1, []int{-32768, 0, 32767, 16})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := LoadWAV(f, 12)
	require.NoError(t, err)

	assert.Equal(t, uint16(0), w(0))
	assert.Equal(t, uint16(2048), w(1))
	assert.Equal(t, uint16(4095), w(2))
	assert.Equal(t, uint16(2049), w(3))
	assert.Equal(t, uint16(0), w(4), "wraps around")
}

func TestLoadWAVTakesFirstChannel(t *testing.T) {
	path := writeWAV(t, 16, 2, []int{-32768, 32767, 32767, -32768})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := LoadWAV(f, 16)
	require.NoError(t, err)

	assert.Equal(t, uint16(0), w(0))
	assert.Equal(t, uint16(65535), w(1))
}

func TestLoadWAVRejects(t *testing.T) {
	path := writeWAV(t, 16, 1, []int{0})
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = LoadWAV(f, 24)
	assert.ErrorIs(t, err, core.ErrInvalidResolution)

	junk := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(junk, []byte("not a wav file at all"), 0o644))
	g, err := os.Open(junk)
	require.NoError(t, err)
	defer g.Close()

	_, err = LoadWAV(g, 12)
	assert.ErrorIs(t, err, ErrInvalidWAV)
}

func TestFromSamplesDrivesPipeline(t *testing.T) {
	samples := make([]uint16, core.SampleCount)
	for i := range samples {
		samples[i] = uint16(i % 4)
	}
	w, err := FromSamples(samples)
	require.NoError(t, err)
	b := NewBoard(w)
	b.Register()

	p, err := core.TakePeripherals()
	require.NoError(t, err)
	cfg := core.DefaultConfig()
	cfg.Clocks = b.Plan()

	s, err := core.Run(p, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, s.Mean, 1e-12)
}

func TestFromSamplesEmpty(t *testing.T) {
	for _, samples := range [][]uint16{nil, {}} {
		w, err := FromSamples(samples)
		assert.ErrorIs(t, err, ErrNoSamples)
		assert.Nil(t, w)
	}
}
