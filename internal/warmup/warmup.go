// Package warmup resolves how far back prices must be fetched so that an
// incremental computation starts with enough history to seed its rolling and
// recursive indicators.
package warmup

import (
	"math"
	"time"
)

// CalendarMarginRatio converts a trading-day lookback into calendar days.
// Weekends and holidays mean roughly 1.5 calendar days pass per trading day,
// so the 200-trading-day maximum lookback resolves to a 300-calendar-day
// margin.
const CalendarMarginRatio = 1.5

// Resolve returns the date from which prices should be fetched so that at
// least maxPeriod trading observations precede targetFrom. Pure, no I/O. A
// price history shorter than the resolved window is not an error: the
// calculator simply emits more leading undefined values.
func Resolve(targetFrom time.Time, maxPeriod int) time.Time {
	margin := int(math.Ceil(float64(maxPeriod) * CalendarMarginRatio))
	return targetFrom.AddDate(0, 0, -margin)
}
