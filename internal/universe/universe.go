// Package universe loads the symbol list a batch run operates on.
package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Load reads symbols from a source CSV file. The column named "Symbol"
// (case-insensitive) is used when present, otherwise the first column; the
// header row is skipped. Blank entries are dropped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty symbol file", path)
	}

	col := 0
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "symbol") {
			col = i
			break
		}
	}

	symbols := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if col >= len(rec) {
			continue
		}
		s := strings.TrimSpace(rec[col])
		if s == "" {
			continue
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

// ApplySuffix appends the exchange suffix (e.g. ".NS") to symbols that do not
// already carry one, producing the identifiers the price source expects.
func ApplySuffix(symbols []string, suffix string) []string {
	if suffix == "" {
		return symbols
	}
	out := make([]string, len(symbols))
	for i, s := range symbols {
		if strings.HasSuffix(s, ".NS") || strings.HasSuffix(s, ".BO") {
			out[i] = s
			continue
		}
		out[i] = s + suffix
	}
	return out
}
