// Package store persists computed indicator rows keyed by (ticker, date).
package store

import (
	"context"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// Store is the result sink for computed indicators. Upsert has
// overwrite-by-key semantics: the store never holds two rows for the same
// (ticker, date). A zero LatestDate means no rows exist for the ticker yet.
type Store interface {
	LatestDate(ctx context.Context, ticker string) (time.Time, error)
	Upsert(ctx context.Context, ticker string, rows []model.IndicatorRow) (int, error)
	Close() error
}
