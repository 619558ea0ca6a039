package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dreamakashk/TradeSetup/internal/state"
	"github.com/dreamakashk/TradeSetup/internal/syncer"
)

// maxErrorsListed caps how many failed symbols a report message spells out.
const maxErrorsListed = 10

// FormatRunReport formats a batch run report into a Telegram message.
func FormatRunReport(rep *syncer.Report) string {
	var b strings.Builder

	icon := "✅"
	if rep.Failed > 0 {
		icon = "⚠️"
	}
	b.WriteString(fmt.Sprintf("%s <b>Indicator sync</b> | %s (%s)\n\n",
		icon, rep.Started.Format("2006-01-02"), rep.Mode))
	b.WriteString(fmt.Sprintf("Processed: %d ok, %d failed\n", rep.Success, rep.Failed))
	b.WriteString(fmt.Sprintf("Up to date: %d\n", rep.UpToDate))
	b.WriteString(fmt.Sprintf("Rows written: %d\n", rep.RowsWritten))
	b.WriteString(fmt.Sprintf("Duration: %s\n", rep.Finished.Sub(rep.Started).Round(time.Second)))

	if len(rep.Errors) > 0 {
		b.WriteString("\n<b>Failures:</b>\n")
		for i, e := range rep.Errors {
			if i == maxErrorsListed {
				b.WriteString(fmt.Sprintf("… and %d more\n", len(rep.Errors)-maxErrorsListed))
				break
			}
			b.WriteString(fmt.Sprintf("• %s: %v\n", e.Symbol, e.Err))
		}
	}
	return b.String()
}

// FormatStatus formats the persisted last-run state for the /status command.
func FormatStatus(st *state.RunState) string {
	if st.LastRunAt.IsZero() {
		return "No sync has run yet."
	}
	var b strings.Builder
	b.WriteString("📦 <b>Last sync</b>\n\n")
	b.WriteString(fmt.Sprintf("Started: %s\n", st.LastRunAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Mode: %s\n", st.Mode))
	b.WriteString(fmt.Sprintf("Symbols: %d ok (%d up to date), %d failed\n", st.Success, st.UpToDate, st.Failed))
	b.WriteString(fmt.Sprintf("Rows written: %d\n", st.RowsWritten))
	if len(st.FailedSymbols) > 0 {
		b.WriteString(fmt.Sprintf("Failed: %s\n", strings.Join(st.FailedSymbols, ", ")))
	}
	return b.String()
}
