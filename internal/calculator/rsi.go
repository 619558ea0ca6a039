package calculator

import "math"

// RSI computes the relative strength index over the given period using a plain
// rolling mean of gains and losses. This is deliberately not Wilder's recursive
// smoothing: the rolling-mean variant is the behavioral contract of the stored
// history. The close-to-close delta at row 0 is undefined, so the first defined
// value appears once a full window of deltas exists (index period).
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	if n > 0 {
		gains[0] = math.NaN()
		losses[0] = math.NaN()
	}
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	out := make([]float64, n)
	for i := range out {
		// avgLoss == 0 with any gain drives rs to +Inf and the result to
		// exactly 100; 0/0 stays NaN, as does any unfilled window.
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
