package core

// NormalizeSlice removes the mean from values in place and returns it.
// values must not be empty.
func NormalizeSlice(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	for i := range values {
		values[i] -= mean
	}
	return mean
}
