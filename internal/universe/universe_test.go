package universe

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbols.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad_SymbolColumn(t *testing.T) {
	path := writeFixture(t, `Company Name,Symbol,Series
Reliance Industries,RELIANCE,EQ
Tata Consultancy Services,TCS,EQ
,,
Infosys,INFY,EQ
`)
	symbols, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"RELIANCE", "TCS", "INFY"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("expected %v, got %v", want, symbols)
	}
}

func TestLoad_FallsBackToFirstColumn(t *testing.T) {
	path := writeFixture(t, `Ticker
RELIANCE
TCS
`)
	symbols, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"RELIANCE", "TCS"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("expected %v, got %v", want, symbols)
	}
}

func TestApplySuffix(t *testing.T) {
	got := ApplySuffix([]string{"RELIANCE", "TCS.NS", "SENSEX.BO"}, ".NS")
	want := []string{"RELIANCE.NS", "TCS.NS", "SENSEX.BO"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
