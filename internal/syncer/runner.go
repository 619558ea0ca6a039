package syncer

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// SymbolError pairs a symbol with its sync failure.
type SymbolError struct {
	Symbol string
	Err    error
}

// Report aggregates one batch run. A failed symbol never aborts the batch.
type Report struct {
	Started     time.Time
	Finished    time.Time
	Mode        Mode
	Success     int
	Failed      int
	UpToDate    int
	RowsWritten int
	Errors      []SymbolError
}

// Runner processes many symbols concurrently with a bounded worker pool.
// Symbol computations share no mutable state; the store serializes its own
// writes. Cancelling the context stops scheduling new symbols but lets
// in-flight symbol transactions finish or roll back cleanly.
type Runner struct {
	Controller *Controller
	Workers    int
}

// NewRunner creates a Runner. workers < 1 falls back to serial processing.
func NewRunner(c *Controller, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{Controller: c, Workers: workers}
}

// Run syncs all symbols in the given mode and returns the aggregate report.
func (r *Runner) Run(ctx context.Context, symbols []string, mode Mode) Report {
	rep := Report{Started: time.Now(), Mode: mode}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(r.Workers)

	total := len(symbols)
	for i, symbol := range symbols {
		if ctx.Err() != nil {
			log.Printf("[WARN] run cancelled, %d of %d symbols not scheduled", total-i, total)
			break
		}
		i, symbol := i, symbol
		g.Go(func() error {
			log.Printf("[INFO] [%d/%d] syncing %s", i+1, total, symbol)
			res, err := r.Controller.Sync(ctx, symbol, mode)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failed++
				rep.Errors = append(rep.Errors, SymbolError{Symbol: symbol, Err: err})
				log.Printf("[ERROR] sync %s: %v", symbol, err)
				return nil
			}
			rep.Success++
			rep.RowsWritten += res.RowsWritten
			if res.Status == StatusNoNewData {
				rep.UpToDate++
				log.Printf("[INFO] %s up to date", res.Ticker)
			} else {
				log.Printf("[INFO] %s: %d rows written", res.Ticker, res.RowsWritten)
			}
			return nil
		})
	}
	g.Wait()

	rep.Finished = time.Now()
	log.Printf("[INFO] batch done: %d ok (%d up to date), %d failed, %d rows written in %s",
		rep.Success, rep.UpToDate, rep.Failed, rep.RowsWritten,
		rep.Finished.Sub(rep.Started).Round(time.Millisecond))
	return rep
}
