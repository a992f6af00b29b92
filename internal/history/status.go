package history

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/bikecast/bikecast/schema"
)

// PrintHistoryStatus prints history status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Predictions: %d\n", status.TotalPredictions)
	if status.TotalPredictions > 0 {
		_, _ = fmt.Fprintf(w, "Last Prediction ID: %d\n", status.LastPredictionID)
		_, _ = fmt.Fprintf(w, "Last Request: %s\n", status.LastRequestTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Request: %s\n", status.OldestRequestTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Fallback Predictions: %d\n", status.FallbackCount)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}
