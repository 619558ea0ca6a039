// Package source provides price-history providers for the sync pipeline.
package source

import (
	"context"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// PriceSource fetches the daily price history for a symbol. A zero from time
// means the full available history. Implementations return points strictly
// ascending by date with no duplicate dates; gaps other than real non-trading
// days are the provider's bug, not the caller's.
type PriceSource interface {
	Fetch(ctx context.Context, symbol string, from time.Time) ([]model.PricePoint, error)
	Name() string
}
