package store

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRow(ticker string, date time.Time, v float64) model.IndicatorRow {
	return model.IndicatorRow{
		Ticker: ticker, Date: date,
		EMA10: v, EMA20: v, EMA50: v, EMA100: v, EMA200: math.NaN(),
		RSI: v, ATR: v, Supertrend: v, OBV: v, AD: v, VolumeSurge: v,
	}
}

func TestLatestDate_EmptyIsZero(t *testing.T) {
	s := openTestStore(t)
	got, err := s.LatestDate(context.Background(), "RELIANCE")
	if err != nil {
		t.Fatalf("latest date: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected zero time for empty store, got %s", got)
	}
}

func TestUpsert_WriteAndCursor(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	d1 := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)

	n, err := s.Upsert(ctx, "RELIANCE", []model.IndicatorRow{
		testRow("RELIANCE", d1, 1), testRow("RELIANCE", d2, 2),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows affected, got %d", n)
	}

	got, err := s.LatestDate(ctx, "RELIANCE")
	if err != nil {
		t.Fatalf("latest date: %v", err)
	}
	if !got.Equal(d2) {
		t.Errorf("expected cursor %s, got %s", d2.Format(dateLayout), got.Format(dateLayout))
	}

	// Other tickers are unaffected.
	other, err := s.LatestDate(ctx, "TCS")
	if err != nil {
		t.Fatalf("latest date: %v", err)
	}
	if !other.IsZero() {
		t.Errorf("expected zero cursor for other ticker, got %s", other)
	}
}

func TestUpsert_OverwriteByKeyNoDuplicates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	d := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)

	if _, err := s.Upsert(ctx, "TCS", []model.IndicatorRow{testRow("TCS", d, 1)}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := s.Upsert(ctx, "TCS", []model.IndicatorRow{testRow("TCS", d, 9)}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int
	var rsi float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(rsi) FROM stock_indicators_daily WHERE ticker = 'TCS'`,
	).Scan(&count, &rsi)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single row per (ticker, date), got %d", count)
	}
	if rsi != 9 {
		t.Errorf("expected overwritten rsi 9, got %v", rsi)
	}
}

func TestUpsert_NaNStoredAsNull(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	d := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)

	if _, err := s.Upsert(ctx, "INFY", []model.IndicatorRow{testRow("INFY", d, 1)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var ema200 sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT ema_200 FROM stock_indicators_daily WHERE ticker = 'INFY'`,
	).Scan(&ema200)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if ema200.Valid {
		t.Errorf("expected NULL for undefined ema_200, got %v", ema200.Float64)
	}
}

func TestUpsert_EmptyBatchIsNoop(t *testing.T) {
	s := openTestStore(t)
	n, err := s.Upsert(context.Background(), "RELIANCE", nil)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows affected, got %d", n)
	}
}
