package calculator

import "github.com/dreamakashk/TradeSetup/internal/model"

type trendState int

const (
	uptrend   trendState = 1
	downtrend trendState = -1
)

// Supertrend computes the trailing-stop supertrend line from median-price
// bands offset by multiplier*ATR(period), carrying an explicit previous-state
// tuple (previous raw bands, previous close, current trend) through a single
// forward pass.
//
// Row 0 seeds with the raw upper band and an initial uptrend regardless of the
// trend later determined for that bar. The resulting one-bar discontinuity
// matches the values already persisted and must not be corrected. Because
// ATR(period) is undefined for the first `period` rows and every comparison
// against a NaN band is false, the bands stay NaN through index period and the
// first concrete supertrend value appears at index period+1.
func Supertrend(series []model.PricePoint, period int, multiplier float64) []float64 {
	n := len(series)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	atr := ATR(series, period)
	upper := make([]float64, n)
	lower := make([]float64, n)
	for i, p := range series {
		mid := (p.High + p.Low) / 2
		upper[i] = mid + multiplier*atr[i]
		lower[i] = mid - multiplier*atr[i]
	}

	trend := uptrend
	out[0] = upper[0]
	for i := 1; i < n; i++ {
		// The upper band only ratchets down while price stays below it; the
		// lower band is the symmetric rule. Both ratchet against the previous
		// raw band, not the previous final band.
		finalUpper := upper[i-1]
		if upper[i] < upper[i-1] || series[i-1].Close > upper[i-1] {
			finalUpper = upper[i]
		}
		finalLower := lower[i-1]
		if lower[i] > lower[i-1] || series[i-1].Close < lower[i-1] {
			finalLower = lower[i]
		}

		// Only the band opposing the current trend can flip it; a close that
		// reaches the own-side band keeps the trend.
		switch {
		case trend == uptrend && series[i].Close <= finalLower:
			trend = downtrend
		case trend == downtrend && series[i].Close >= finalUpper:
			trend = uptrend
		}

		if trend == uptrend {
			out[i] = finalLower
		} else {
			out[i] = finalUpper
		}
	}
	return out
}
