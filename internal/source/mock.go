package source

import (
	"context"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// MockSource returns fixed data for development and testing. Symbols without
// an explicit fixture get a synthetic generated series so a full pipeline run
// works offline.
type MockSource struct {
	Points map[string][]model.PricePoint
	Err    error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Fetch(_ context.Context, symbol string, from time.Time) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	all, ok := m.Points[symbol]
	if !ok {
		all = GenerateBars(1000, 500)
	}
	out := make([]model.PricePoint, 0, len(all))
	for _, p := range all {
		if !from.IsZero() && p.Date.Before(from) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// GenerateBars produces a synthetic ascending daily series ending today,
// useful for development runs without a live source.
func GenerateBars(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Date:   model.Day(time.Now().AddDate(0, 0, -(count - i))),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return points
}
