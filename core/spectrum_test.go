package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(fn func(n int) uint16) *SampleBuffer {
	var buf SampleBuffer
	for i := range buf {
		buf[i] = fn(i)
	}
	return &buf
}

// sine16 is a full-scale 16-bit sinusoid with the given number of cycles
// per buffer.
func sine16(cycles int) func(n int) uint16 {
	return func(n int) uint16 {
		phase := 2 * math.Pi * float64(cycles) * float64(n) / SampleCount
		return uint16(math.Round(32767.5 + 32767.5*math.Sin(phase)))
	}
}

func peakBin(mags [SpectrumBins]float64) int {
	peak := 0
	for i, m := range mags {
		if m > mags[peak] {
			peak = i
		}
	}
	return peak
}

func TestWiden(t *testing.T) {
	buf := fill(func(n int) uint16 { return uint16(n * 64) })
	buf[SampleCount-1] = math.MaxUint16

	out := Widen(buf)

	for i := 0; i < SampleCount-1; i++ {
		if out[i] != float64(i*64) {
			t.Fatalf("sample %d = %v, want %d", i, out[i], i*64)
		}
	}
	assert.Equal(t, 65535.0, out[SampleCount-1])
}

func TestNewAnalyzerMatchesBuffer(t *testing.T) {
	a := NewAnalyzer()
	require.NotNil(t, a)
	assert.Equal(t, SampleCount, a.fft.Len())
	assert.Len(t, a.coeff, SpectrumBins+1)
}

func TestAnalyzeZero(t *testing.T) {
	var buf SampleBuffer

	s := NewAnalyzer().Analyze(&buf)

	assert.Zero(t, s.Mean)
	for i, m := range s.Magnitudes() {
		assert.InDelta(t, 0, m, 1e-9, "bin %d", i)
	}
}

func TestAnalyzeConstant(t *testing.T) {
	buf := fill(func(int) uint16 { return 1000 })

	s := NewAnalyzer().Analyze(buf)

	assert.Equal(t, 1000.0, s.Mean)
	for i, m := range s.Magnitudes() {
		assert.InDelta(t, 0, m, 1e-9, "bin %d", i)
	}
}

func TestAnalyzeSinusoidPeak(t *testing.T) {
	for _, cycles := range []int{1, 5, 64, 300, SpectrumBins - 1} {
		s := NewAnalyzer().Analyze(fill(sine16(cycles)))
		mags := s.Magnitudes()

		require.Equal(t, cycles, peakBin(mags), "cycles=%d", cycles)

		// A full-scale sinusoid of amplitude A puts N*A/2 into its bin.
		want := SampleCount * 32767.5 / 2
		assert.InEpsilon(t, want, mags[cycles], 1e-4, "cycles=%d", cycles)

		for i, m := range mags {
			if i == cycles {
				continue
			}
			if m > want*1e-4 {
				t.Errorf("cycles=%d: bin %d magnitude %v, want near zero", cycles, i, m)
			}
		}
		assert.InDelta(t, 32767.5, s.Mean, 1)
	}
}

func TestAnalyzeAlternatingPutsEnergyAtNyquist(t *testing.T) {
	buf := fill(func(n int) uint16 {
		if n%2 == 0 {
			return 0
		}
		return math.MaxUint16
	})

	s := NewAnalyzer().Analyze(buf)

	assert.Equal(t, 32767.5, s.Mean)
	assert.InDelta(t, 0, s.DC(), 1e-6)
	assert.InDelta(t, 32767.5*SampleCount, math.Abs(s.Nyquist()), 1e-3)
	assert.InDelta(t, 32767.5*SampleCount, s.Magnitude(0), 1e-3)

	for i := 1; i < SpectrumBins; i++ {
		assert.InDelta(t, 0, s.Magnitude(i), 1e-3, "bin %d", i)
	}
}

func TestAnalyzerReuse(t *testing.T) {
	a := NewAnalyzer()
	first := a.Analyze(fill(sine16(10))).Magnitudes()
	a.Analyze(fill(func(int) uint16 { return 7 }))
	again := a.Analyze(fill(sine16(10))).Magnitudes()

	assert.Equal(t, first, again)
}

func BenchmarkAnalyze(b *testing.B) {
	a := NewAnalyzer()
	buf := fill(sine16(17))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Analyze(buf)
	}
}
