package state

import (
	"encoding/json"
	"os"
	"time"
)

// RunState is the persisted record of the most recent batch run.
type RunState struct {
	LastRunAt     time.Time `json:"last_run_at"`
	Mode          string    `json:"mode"`
	Success       int       `json:"success"`
	Failed        int       `json:"failed"`
	UpToDate      int       `json:"up_to_date"`
	RowsWritten   int       `json:"rows_written"`
	FailedSymbols []string  `json:"failed_symbols,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoadState reads the run state from a JSON file. Returns a zero state if the
// file doesn't exist.
func LoadState(filePath string) (*RunState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &RunState{}, nil
		}
		return nil, err
	}
	var st RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveState writes the run state to a JSON file.
func SaveState(filePath string, st *RunState) error {
	st.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
