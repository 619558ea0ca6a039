package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// dateLayout is how dates are stored; ISO dates compare lexicographically in
// chronological order, so MAX(date) works on the TEXT column.
const dateLayout = "2006-01-02"

// SQLiteStore persists indicator rows to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance while the pipeline writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_indicators_daily (
			ticker       TEXT NOT NULL,
			date         TEXT NOT NULL,
			ema_10       REAL,
			ema_20       REAL,
			ema_50       REAL,
			ema_100      REAL,
			ema_200      REAL,
			rsi          REAL,
			atr          REAL,
			supertrend   REAL,
			obv          REAL,
			ad           REAL,
			volume_surge REAL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_indicators_date ON stock_indicators_daily(date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// LatestDate returns the most recent date with indicator rows for the ticker,
// or the zero time when none exist.
func (s *SQLiteStore) LatestDate(ctx context.Context, ticker string) (time.Time, error) {
	var latest sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(date) FROM stock_indicators_daily WHERE ticker = ?`, ticker,
	).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("latest date for %s: %w", ticker, err)
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, latest.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored date %q: %w", latest.String, err)
	}
	return t, nil
}

// Upsert writes all rows for the ticker inside a single transaction: either
// the whole batch commits or none of it does. Existing (ticker, date) rows are
// overwritten column by column.
func (s *SQLiteStore) Upsert(ctx context.Context, ticker string, rows []model.IndicatorRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO stock_indicators_daily
		(ticker, date, ema_10, ema_20, ema_50, ema_100, ema_200,
		 rsi, atr, supertrend, obv, ad, volume_surge)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (ticker, date) DO UPDATE SET
			ema_10       = excluded.ema_10,
			ema_20       = excluded.ema_20,
			ema_50       = excluded.ema_50,
			ema_100      = excluded.ema_100,
			ema_200      = excluded.ema_200,
			rsi          = excluded.rsi,
			atr          = excluded.atr,
			supertrend   = excluded.supertrend,
			obv          = excluded.obv,
			ad           = excluded.ad,
			volume_surge = excluded.volume_surge`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx, ticker, r.Date.Format(dateLayout),
			nullable(r.EMA10), nullable(r.EMA20), nullable(r.EMA50),
			nullable(r.EMA100), nullable(r.EMA200),
			nullable(r.RSI), nullable(r.ATR), nullable(r.Supertrend),
			nullable(r.OBV), nullable(r.AD), nullable(r.VolumeSurge),
		)
		if err != nil {
			return 0, fmt.Errorf("upsert %s %s: %w", ticker, r.Date.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}
	return len(rows), nil
}

// nullable maps an undefined (NaN) indicator value to SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
