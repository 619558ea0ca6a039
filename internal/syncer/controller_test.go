package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

const dateLayout = "2006-01-02"

func day(i int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func mkSeries(n int) []model.PricePoint {
	series := make([]model.PricePoint, n)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)
		series[i] = model.PricePoint{
			Date: day(i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000,
		}
	}
	return series
}

// fakeSource serves per-symbol fixtures and records the from date it was
// asked for.
type fakeSource struct {
	points   map[string][]model.PricePoint
	errFor   map[string]error
	mu       sync.Mutex
	lastFrom map[string]time.Time
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		points:   map[string][]model.PricePoint{},
		errFor:   map[string]error{},
		lastFrom: map[string]time.Time{},
	}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(_ context.Context, symbol string, from time.Time) ([]model.PricePoint, error) {
	f.mu.Lock()
	f.lastFrom[symbol] = from
	f.mu.Unlock()
	if err := f.errFor[symbol]; err != nil {
		return nil, err
	}
	var out []model.PricePoint
	for _, p := range f.points[symbol] {
		if from.IsZero() || !p.Date.Before(from) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeStore is an in-memory store that counts writes per (ticker, date).
type fakeStore struct {
	mu        sync.Mutex
	rows      map[string]map[string]model.IndicatorRow
	writes    map[string]map[string]int
	upsertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:   map[string]map[string]model.IndicatorRow{},
		writes: map[string]map[string]int{},
	}
}

func (f *fakeStore) seed(ticker string, dates ...time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[ticker] == nil {
		f.rows[ticker] = map[string]model.IndicatorRow{}
		f.writes[ticker] = map[string]int{}
	}
	for _, d := range dates {
		f.rows[ticker][d.Format(dateLayout)] = model.IndicatorRow{Ticker: ticker, Date: d}
	}
}

func (f *fakeStore) LatestDate(_ context.Context, ticker string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest time.Time
	for ds := range f.rows[ticker] {
		d, _ := time.Parse(dateLayout, ds)
		if d.After(latest) {
			latest = d
		}
	}
	return latest, nil
}

func (f *fakeStore) Upsert(_ context.Context, ticker string, rows []model.IndicatorRow) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	if f.rows[ticker] == nil {
		f.rows[ticker] = map[string]model.IndicatorRow{}
		f.writes[ticker] = map[string]int{}
	}
	for _, r := range rows {
		ds := r.Date.Format(dateLayout)
		f.rows[ticker][ds] = r
		f.writes[ticker][ds]++
	}
	return len(rows), nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) dates(ticker string) map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]bool{}
	for ds := range f.rows[ticker] {
		out[ds] = true
	}
	return out
}

func TestSync_ColdStartWritesFullHistory(t *testing.T) {
	src := newFakeSource()
	src.points["TEST.NS"] = mkSeries(30)
	st := newFakeStore()
	c := NewController(src, st)

	res, err := c.Sync(context.Background(), "TEST.NS", ModeIncremental)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusSynced {
		t.Errorf("expected StatusSynced, got %s", res.Status)
	}
	if res.RowsWritten != 30 {
		t.Errorf("expected 30 rows written, got %d", res.RowsWritten)
	}
	if res.Ticker != "TEST" {
		t.Errorf("expected normalized ticker TEST, got %s", res.Ticker)
	}
	if !src.lastFrom["TEST.NS"].IsZero() {
		t.Error("cold start must fetch full history (zero from)")
	}
	if got := len(st.dates("TEST")); got != 30 {
		t.Errorf("expected 30 stored dates, got %d", got)
	}
}

func TestSync_IncrementalSlicesAtCursor(t *testing.T) {
	src := newFakeSource()
	src.points["TEST.NS"] = mkSeries(40)
	st := newFakeStore()
	// Existing rows through day 29.
	for i := 0; i < 30; i++ {
		st.seed("TEST", day(i))
	}
	c := NewController(src, st)

	res, err := c.Sync(context.Background(), "TEST.NS", ModeIncremental)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RowsWritten != 10 {
		t.Errorf("expected 10 new rows, got %d", res.RowsWritten)
	}

	// Warmup: fetch must start 300 calendar days before the target date.
	wantFrom := day(30).AddDate(0, 0, -300)
	if !src.lastFrom["TEST.NS"].Equal(wantFrom) {
		t.Errorf("expected fetch from %s, got %s",
			wantFrom.Format(dateLayout), src.lastFrom["TEST.NS"].Format(dateLayout))
	}

	// Slicing law: persisted dates are the prior set plus price dates after
	// the cursor, and no date at or before the cursor was rewritten.
	dates := st.dates("TEST")
	if len(dates) != 40 {
		t.Errorf("expected 40 stored dates, got %d", len(dates))
	}
	for i := 0; i < 30; i++ {
		if n := st.writes["TEST"][day(i).Format(dateLayout)]; n != 0 {
			t.Errorf("date %s at or before cursor was rewritten %d times", day(i).Format(dateLayout), n)
		}
	}
	for i := 30; i < 40; i++ {
		if n := st.writes["TEST"][day(i).Format(dateLayout)]; n != 1 {
			t.Errorf("date %s: expected exactly one write, got %d", day(i).Format(dateLayout), n)
		}
	}
}

func TestSync_SecondRunIsNoNewData(t *testing.T) {
	src := newFakeSource()
	src.points["TEST.NS"] = mkSeries(30)
	st := newFakeStore()
	c := NewController(src, st)

	if _, err := c.Sync(context.Background(), "TEST.NS", ModeIncremental); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	res, err := c.Sync(context.Background(), "TEST.NS", ModeIncremental)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if res.Status != StatusNoNewData {
		t.Errorf("expected StatusNoNewData, got %s", res.Status)
	}
	if res.RowsWritten != 0 {
		t.Errorf("expected zero writes, got %d", res.RowsWritten)
	}
	for i := 0; i < 30; i++ {
		if n := st.writes["TEST"][day(i).Format(dateLayout)]; n != 1 {
			t.Errorf("date %s: expected exactly one write after two syncs, got %d", day(i).Format(dateLayout), n)
		}
	}
}

func TestSync_FullRecalculateOverwritesHistory(t *testing.T) {
	src := newFakeSource()
	src.points["TEST.NS"] = mkSeries(30)
	st := newFakeStore()
	c := NewController(src, st)

	if _, err := c.Sync(context.Background(), "TEST.NS", ModeIncremental); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	res, err := c.Sync(context.Background(), "TEST.NS", ModeFullRecalculate)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if res.RowsWritten != 30 {
		t.Errorf("expected full overwrite of 30 rows, got %d", res.RowsWritten)
	}
	if !src.lastFrom["TEST.NS"].IsZero() {
		t.Error("full recalculation must ignore the cursor and fetch everything")
	}
	for i := 0; i < 30; i++ {
		if n := st.writes["TEST"][day(i).Format(dateLayout)]; n != 2 {
			t.Errorf("date %s: expected two writes, got %d", day(i).Format(dateLayout), n)
		}
	}
}

func TestSync_EmptyHistoryIsError(t *testing.T) {
	src := newFakeSource()
	st := newFakeStore()
	c := NewController(src, st)

	_, err := c.Sync(context.Background(), "GHOST.NS", ModeIncremental)
	if !errors.Is(err, ErrEmptyPriceHistory) {
		t.Errorf("expected ErrEmptyPriceHistory, got %v", err)
	}
}

func TestSync_CursorWithNoNewPricesIsNoNewData(t *testing.T) {
	src := newFakeSource()
	st := newFakeStore()
	// Cursor exists but the source has nothing at all in the window.
	st.seed("TEST", day(0))
	c := NewController(src, st)

	res, err := c.Sync(context.Background(), "TEST.NS", ModeIncremental)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusNoNewData {
		t.Errorf("expected StatusNoNewData, got %s", res.Status)
	}
}

func TestSync_ShortHistoryIsNotAnError(t *testing.T) {
	// Fewer points than any warmup window: the calculator just emits more
	// leading undefined values.
	src := newFakeSource()
	src.points["NEW.NS"] = mkSeries(5)
	st := newFakeStore()
	c := NewController(src, st)

	res, err := c.Sync(context.Background(), "NEW.NS", ModeIncremental)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RowsWritten != 5 {
		t.Errorf("expected 5 rows, got %d", res.RowsWritten)
	}
}

func TestSync_UpsertFailureSurfaces(t *testing.T) {
	src := newFakeSource()
	src.points["TEST.NS"] = mkSeries(10)
	st := newFakeStore()
	st.upsertErr = fmt.Errorf("disk full")
	c := NewController(src, st)

	_, err := c.Sync(context.Background(), "TEST.NS", ModeIncremental)
	if err == nil {
		t.Fatal("expected upsert error to surface")
	}
	if got := len(st.dates("TEST")); got != 0 {
		t.Errorf("expected no rows persisted after failed upsert, got %d", got)
	}
}
