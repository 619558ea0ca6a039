package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/model"
)

// CSVSource reads per-symbol price files from a directory. Each file is named
// <SYMBOL>.csv with a Date,Open,High,Low,Close,Volume header, one trading day
// per row.
type CSVSource struct {
	Dir string
}

func NewCSVSource(dir string) *CSVSource { return &CSVSource{Dir: dir} }

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Fetch(_ context.Context, symbol string, from time.Time) ([]model.PricePoint, error) {
	path := filepath.Join(s.Dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return []model.PricePoint{}, nil
	}

	col, err := columnIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	points := make([]model.PricePoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		date, err := time.Parse("2006-01-02", rec[col["Date"]])
		if err != nil {
			return nil, fmt.Errorf("%s: parse date %q: %w", path, rec[col["Date"]], err)
		}
		date = model.Day(date)
		if !from.IsZero() && date.Before(from) {
			continue
		}
		p := model.PricePoint{Date: date}
		for name, dst := range map[string]*float64{
			"Open": &p.Open, "High": &p.High, "Low": &p.Low, "Close": &p.Close, "Volume": &p.Volume,
		} {
			v, err := strconv.ParseFloat(rec[col[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: parse %s %q: %w", path, name, rec[col[name]], err)
			}
			*dst = v
		}
		points = append(points, p)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func columnIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"Date", "Open", "High", "Low", "Close", "Volume"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return col, nil
}
