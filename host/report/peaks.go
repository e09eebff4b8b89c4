package report

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPeakHeight is the magnitude a bin must reach to count as a peak.
const DefaultPeakHeight = 0.2e6

var ErrEmptySpectrum = errors.New("empty spectrum")

// Mirror returns x followed by x reversed, the full-length view of a
// half spectrum.
func Mirror(x []float64) []float64 {
	out := make([]float64, 0, 2*len(x))
	out = append(out, x...)
	rev := slices.Clone(x)
	slices.Reverse(rev)
	return append(out, rev...)
}

// FindPeaks returns the indices of local maxima of x whose value is at least
// height. A flat top counts once, at its middle (rounded down). The first
// and last samples are never peaks.
func FindPeaks(x []float64, height float64) []int {
	var peaks []int
	last := len(x) - 1

	for i := 1; i < last; {
		if x[i-1] >= x[i] {
			i++
			continue
		}
		ahead := i + 1
		for ahead < last && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			mid := (i + ahead - 1) / 2
			if x[mid] >= height {
				peaks = append(peaks, mid)
			}
		}
		i = ahead
	}
	return peaks
}

// Summary describes a magnitude spectrum.
type Summary struct {
	Bins   int
	Peak   float64
	PeakAt int
	Total  float64
	Mean   float64
	StdDev float64
}

// Summarize computes a Summary of mags.
func Summarize(mags []float64) (Summary, error) {
	if len(mags) == 0 {
		return Summary{}, ErrEmptySpectrum
	}
	idx := floats.MaxIdx(mags)
	mean, std := stat.MeanStdDev(mags, nil)
	return Summary{
		Bins:   len(mags),
		Peak:   mags[idx],
		PeakAt: idx,
		Total:  floats.Sum(mags),
		Mean:   mean,
		StdDev: std,
	}, nil
}
