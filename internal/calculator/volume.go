package calculator

import "github.com/dreamakashk/TradeSetup/internal/model"

// OBV computes on-balance volume: cumulative volume signed by the direction of
// the close-to-close move, starting at 0. A flat close leaves it unchanged.
func OBV(series []model.PricePoint) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	obv := 0.0
	for i := 1; i < len(series); i++ {
		switch {
		case series[i].Close > series[i-1].Close:
			obv += series[i].Volume
		case series[i].Close < series[i-1].Close:
			obv -= series[i].Volume
		}
		out[i] = obv
	}
	return out
}

// ADLine computes the accumulation/distribution line: cumulative volume
// weighted by the money-flow multiplier. The multiplier is defined as 0 when
// high == low rather than propagating a division by zero.
func ADLine(series []model.PricePoint) []float64 {
	out := make([]float64, len(series))
	ad := 0.0
	for i, p := range series {
		mfm := 0.0
		if p.High != p.Low {
			mfm = ((p.Close - p.Low) - (p.High - p.Close)) / (p.High - p.Low)
		}
		ad += mfm * p.Volume
		out[i] = ad
	}
	return out
}

// VolumeSurge computes today's volume relative to its rolling mean over the
// given period. Undefined until the window is full.
func VolumeSurge(series []model.PricePoint, period int) []float64 {
	vols := make([]float64, len(series))
	for i, p := range series {
		vols[i] = p.Volume
	}
	ma := rollingMean(vols, period)
	out := make([]float64, len(series))
	for i := range out {
		out[i] = vols[i] / ma[i]
	}
	return out
}
