package store

import (
	"context"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// NoopStore is used when the database is disabled: indicators are computed
// but not persisted. Upsert reports the rows it would have written so dry
// runs still show the work done.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LatestDate(_ context.Context, _ string) (time.Time, error) {
	return time.Time{}, nil
}

func (n *NoopStore) Upsert(_ context.Context, _ string, rows []model.IndicatorRow) (int, error) {
	return len(rows), nil
}

func (n *NoopStore) Close() error { return nil }
