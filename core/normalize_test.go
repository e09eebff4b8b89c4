package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func TestNormalizeSlice(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		mean   float64
	}{
		{"single value", []float64{42}, 42},
		{"two values", []float64{1, 3}, 2},
		{"negative and positive", []float64{-5, 5, -10, 10}, 0},
		{"ramp", []float64{0, 1, 2, 3, 4, 5, 6, 7}, 3.5},
		{"12-bit extremes", []float64{0, 4095, 0, 4095}, 2047.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values := append([]float64(nil), tc.values...)

			got := NormalizeSlice(values)

			assert.InDelta(t, tc.mean, got, 1e-9)
			assert.InDelta(t, 0, mean(values), 1e-9, "normalized slice should have zero mean")
			for i := range values {
				assert.InDelta(t, tc.values[i]-tc.mean, values[i], 1e-9)
			}
		})
	}
}

func TestNormalizeSliceTwice(t *testing.T) {
	values := []float64{3, 9, 27, 81, 243}
	NormalizeSlice(values)
	once := append([]float64(nil), values...)

	got := NormalizeSlice(values)

	assert.InDelta(t, 0, got, 1e-9)
	assert.InDeltaSlice(t, once, values, 1e-9)
}

func TestNormalizeSliceConstant(t *testing.T) {
	values := make([]float64, SampleCount)
	for i := range values {
		values[i] = 1000
	}

	got := NormalizeSlice(values)

	assert.Equal(t, 1000.0, got)
	for i, v := range values {
		if v != 0 {
			t.Fatalf("value %d = %v, want 0", i, v)
		}
	}
}

func TestNormalizeSliceEmpty(t *testing.T) {
	// Empty input is a caller error; the mean comes back as NaN.
	assert.True(t, math.IsNaN(NormalizeSlice(nil)))
}
