package core

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FloatSampleBuffer is a SampleBuffer widened to float64.
type FloatSampleBuffer [SampleCount]float64

// Widen converts every sample to float64 without scaling.
func Widen(buf *SampleBuffer) FloatSampleBuffer {
	var out FloatSampleBuffer
	for i, v := range buf {
		out[i] = float64(v)
	}
	return out
}

// Spectrum is the packed real FFT of one acquisition. Bin 0 holds the DC
// term in its real part and the Nyquist term in its imaginary part; bins
// 1..SpectrumBins-1 are the positive frequency coefficients.
type Spectrum struct {
	Mean float64 // DC offset removed before the transform
	Bins [SpectrumBins]complex128
}

// Magnitude returns |Bins[i]|.
func (s *Spectrum) Magnitude(i int) float64 {
	return cmplx.Abs(s.Bins[i])
}

// Magnitudes returns the magnitude of every bin, DC first.
func (s *Spectrum) Magnitudes() [SpectrumBins]float64 {
	var out [SpectrumBins]float64
	for i, b := range s.Bins {
		out[i] = cmplx.Abs(b)
	}
	return out
}

// DC returns the zero-frequency coefficient.
func (s *Spectrum) DC() float64 {
	return real(s.Bins[0])
}

// Nyquist returns the coefficient at half the sample rate.
func (s *Spectrum) Nyquist() float64 {
	return imag(s.Bins[0])
}

// Analyzer turns a filled SampleBuffer into a Spectrum. It keeps its FFT
// plan and scratch space between runs.
type Analyzer struct {
	fft   *fourier.FFT
	input FloatSampleBuffer
	coeff []complex128
}

// NewAnalyzer plans a real FFT of SampleCount points. It panics if the plan
// does not match the buffer length.
func NewAnalyzer() *Analyzer {
	fft := fourier.NewFFT(SampleCount)
	if fft.Len() != len(FloatSampleBuffer{}) {
		panic("FFT length does not match sample buffer")
	}
	return &Analyzer{
		fft:   fft,
		coeff: make([]complex128, SampleCount/2+1),
	}
}

// Analyze widens buf, removes its mean and transforms it.
func (a *Analyzer) Analyze(buf *SampleBuffer) *Spectrum {
	a.input = Widen(buf)
	mean := NormalizeSlice(a.input[:])

	a.fft.Coefficients(a.coeff, a.input[:])

	s := &Spectrum{Mean: mean}
	s.Bins[0] = complex(real(a.coeff[0]), real(a.coeff[SpectrumBins]))
	copy(s.Bins[1:], a.coeff[1:SpectrumBins])

	RecordTiming(EvtAnalyzed, 0)
	return s
}
