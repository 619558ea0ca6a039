package calculator

// EMA computes the exponential moving average with smoothing 2/(period+1),
// seeded with the first observed value (not a simple-average seed): the first
// element of any window equals that window's first value, and
// ema[i] = alpha*v[i] + (1-alpha)*ema[i-1] from there.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
