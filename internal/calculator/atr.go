package calculator

import (
	"math"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// trueRange computes the per-bar true range. Row 0 has no previous close and
// is undefined; math.Max propagates the NaN.
func trueRange(series []model.PricePoint) []float64 {
	tr := make([]float64, len(series))
	for i := range series {
		if i == 0 {
			tr[i] = math.NaN()
			continue
		}
		hl := series[i].High - series[i].Low
		hc := math.Abs(series[i].High - series[i-1].Close)
		lc := math.Abs(series[i].Low - series[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}

// ATR computes the average true range as a rolling mean of the true range.
func ATR(series []model.PricePoint, period int) []float64 {
	return rollingMean(trueRange(series), period)
}
