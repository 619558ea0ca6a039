package calculator

import "math"

// rollingMean returns the trailing mean of values over the given period.
// An element is NaN until its window is full or while the window still covers
// an undefined (NaN) input. Each window is summed independently, left to
// right, so an output value depends only on its own window and is bit-identical
// no matter where the enclosing series starts.
func rollingMean(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}
