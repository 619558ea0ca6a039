package model

import (
	"strings"
	"time"
)

// PricePoint is a single daily OHLCV bar for a symbol.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// NormalizeSymbol strips exchange suffix decoration (e.g. "RELIANCE.NS" ->
// "RELIANCE") so the bare ticker is used as the store key.
func NormalizeSymbol(symbol string) string {
	s := strings.TrimSuffix(symbol, ".NS")
	s = strings.TrimSuffix(s, ".BO")
	return s
}

// Day truncates t to UTC midnight. All dates in the pipeline are trading days;
// intraday components coming from a price source are noise.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
