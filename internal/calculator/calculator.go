// Package calculator computes the daily technical-indicator set over an
// ordered price series. Every function is pure: no I/O, no hidden state, and
// identical input always yields bit-identical output. Values whose lookback
// window is not yet satisfied are NaN; persistence maps them to NULL.
package calculator

import (
	"math"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// Compute calculates all indicators for the given ticker over an ordered daily
// series. The output is aligned index for index with the input. Recursive
// indicators (EMA seeds, OBV, AD, supertrend trend state) derive their state
// from whatever window they are given, which is why incremental callers must
// prepend a warmup window before slicing.
func Compute(ticker string, series []model.PricePoint, p Params) []model.IndicatorRow {
	closes := extractCloses(series)

	emas := make([][]float64, len(p.EMAPeriods))
	for i, period := range p.EMAPeriods {
		emas[i] = EMA(closes, period)
	}

	rsi := RSI(closes, p.RSIPeriod)
	atr := ATR(series, p.ATRPeriod)
	st := Supertrend(series, p.SupertrendPeriod, p.SupertrendMultiplier)
	obv := OBV(series)
	ad := ADLine(series)
	vs := VolumeSurge(series, p.VolumeSurgePeriod)

	rows := make([]model.IndicatorRow, len(series))
	for i, pt := range series {
		rows[i] = model.IndicatorRow{
			Ticker:      ticker,
			Date:        pt.Date,
			EMA10:       emaAt(emas, 0, i),
			EMA20:       emaAt(emas, 1, i),
			EMA50:       emaAt(emas, 2, i),
			EMA100:      emaAt(emas, 3, i),
			EMA200:      emaAt(emas, 4, i),
			RSI:         rsi[i],
			ATR:         atr[i],
			Supertrend:  st[i],
			OBV:         obv[i],
			AD:          ad[i],
			VolumeSurge: vs[i],
		}
	}
	return rows
}

func emaAt(emas [][]float64, idx, i int) float64 {
	if idx >= len(emas) {
		return math.NaN()
	}
	return emas[idx][i]
}

func extractCloses(series []model.PricePoint) []float64 {
	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}
	return closes
}
