// Package state persists the outcome of the most recent batch run so status
// queries work across restarts.
package state

import (
	"sync"

	"github.com/dreamakashk/TradeSetup/internal/syncer"
)

// Manager guards the run-state file against concurrent batch completions.
type Manager struct {
	mu       sync.Mutex
	state    *RunState
	filePath string
}

// NewManager creates a Manager, loading existing state from disk if present.
func NewManager(filePath string) (*Manager, error) {
	st, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: st, filePath: filePath}, nil
}

// Get returns a copy of the current run state.
func (m *Manager) Get() RunState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// RecordRun stores the report of a finished batch run and persists it.
func (m *Manager) RecordRun(rep *syncer.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	failed := make([]string, 0, len(rep.Errors))
	for _, e := range rep.Errors {
		failed = append(failed, e.Symbol)
	}
	m.state = &RunState{
		LastRunAt:     rep.Started,
		Mode:          string(rep.Mode),
		Success:       rep.Success,
		Failed:        rep.Failed,
		UpToDate:      rep.UpToDate,
		RowsWritten:   rep.RowsWritten,
		FailedSymbols: failed,
	}
	return SaveState(m.filePath, m.state)
}
