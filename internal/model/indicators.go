package model

import "time"

// IndicatorRow holds all computed indicators for one (ticker, date).
// Values that are undefined because the indicator's lookback window is not yet
// satisfied are carried as IEEE NaN; the store converts NaN to SQL NULL on write.
type IndicatorRow struct {
	Ticker      string
	Date        time.Time
	EMA10       float64
	EMA20       float64
	EMA50       float64
	EMA100      float64
	EMA200      float64
	RSI         float64
	ATR         float64
	Supertrend  float64
	OBV         float64
	AD          float64
	VolumeSurge float64
}
