// Package syncer orchestrates incremental indicator computation per symbol:
// locate the cursor, fetch prices with a warmup window, recompute, slice, and
// upsert only the newly valid rows.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/calculator"
	"github.com/dreamakashk/TradeSetup/internal/model"
	"github.com/dreamakashk/TradeSetup/internal/source"
	"github.com/dreamakashk/TradeSetup/internal/store"
	"github.com/dreamakashk/TradeSetup/internal/warmup"
)

// Mode selects how a symbol is synced.
type Mode string

const (
	// ModeIncremental continues from the latest stored date, falling back to
	// a cold start when nothing is stored yet.
	ModeIncremental Mode = "incremental"
	// ModeFullRecalculate recomputes and overwrites the full history
	// regardless of any existing cursor (used after a formula change).
	ModeFullRecalculate Mode = "full"
)

// Status is the terminal state of a symbol sync.
type Status string

const (
	StatusSynced    Status = "synced"
	StatusNoNewData Status = "no_new_data"
)

// ErrEmptyPriceHistory marks a symbol whose price source returned nothing on a
// cold start. Callers skip the symbol and continue.
var ErrEmptyPriceHistory = errors.New("price source returned no rows")

// Result reports one symbol sync.
type Result struct {
	Symbol      string
	Ticker      string
	RowsWritten int
	Status      Status
}

// Controller runs the per-symbol sync state machine. It is the only component
// aware of what already exists in the store; the calculator stays pure.
type Controller struct {
	Source source.PriceSource
	Store  store.Store
	Params calculator.Params
}

// NewController creates a Controller with the default indicator period set.
func NewController(src source.PriceSource, st store.Store) *Controller {
	return &Controller{Source: src, Store: st, Params: calculator.DefaultParams()}
}

// Sync brings one symbol up to date. It is idempotent: a second incremental
// call with no new upstream data reports StatusNoNewData and writes nothing.
func (c *Controller) Sync(ctx context.Context, symbol string, mode Mode) (Result, error) {
	ticker := model.NormalizeSymbol(symbol)
	res := Result{Symbol: symbol, Ticker: ticker}

	// A zero targetFrom means cold start: fetch and persist the full history.
	var targetFrom, fetchFrom time.Time
	if mode != ModeFullRecalculate {
		latest, err := c.Store.LatestDate(ctx, ticker)
		if err != nil {
			return res, fmt.Errorf("cursor for %s: %w", ticker, err)
		}
		if !latest.IsZero() {
			targetFrom = latest.AddDate(0, 0, 1)
			// Recursive indicators re-derive their state over the warmup
			// window; only rows at or after targetFrom are persisted.
			fetchFrom = warmup.Resolve(targetFrom, c.Params.MaxPeriod())
		}
	}

	points, err := c.Source.Fetch(ctx, symbol, fetchFrom)
	if err != nil {
		return res, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if len(points) == 0 {
		if !targetFrom.IsZero() {
			res.Status = StatusNoNewData
			return res, nil
		}
		return res, fmt.Errorf("%s: %w", symbol, ErrEmptyPriceHistory)
	}

	rows := calculator.Compute(ticker, points, c.Params)
	if !targetFrom.IsZero() {
		rows = sliceFrom(rows, targetFrom)
		if len(rows) == 0 {
			res.Status = StatusNoNewData
			return res, nil
		}
	}

	written, err := c.Store.Upsert(ctx, ticker, rows)
	if err != nil {
		return res, fmt.Errorf("upsert %s: %w", ticker, err)
	}
	res.RowsWritten = written
	res.Status = StatusSynced
	return res, nil
}

// sliceFrom keeps rows dated at or after from. Rows are ascending by date.
func sliceFrom(rows []model.IndicatorRow, from time.Time) []model.IndicatorRow {
	i := sort.Search(len(rows), func(i int) bool { return !rows[i].Date.Before(from) })
	return rows[i:]
}
