package history

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/internal/parquet"
)

// ExportPredictions writes every stored prediction to a Parquet file.
// The ".parquet" extension is appended when missing. It returns the written path.
func ExportPredictions(w io.Writer, store contract.HistoryStore, outputFile string) (string, error) {
	if outputFile == "" {
		return "", errors.New("--output-file is required for export command")
	}
	if store == nil {
		return "", errors.New("prediction history is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return "", fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalPredictions == 0 {
		return "", errors.New("no prediction history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total predictions: %d\n", status.TotalPredictions)

	records, err := store.GetAllPredictions()
	if err != nil {
		return "", fmt.Errorf("failed to retrieve predictions: %w", err)
	}

	path := outputFile
	if !strings.HasSuffix(path, ".parquet") {
		path += ".parquet"
	}

	rows := parquet.ConvertPredictionRecords(records)
	if err := parquet.WritePredictionsParquet(rows, path); err != nil {
		return "", fmt.Errorf("failed to write predictions: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d predictions to: %s\n", len(rows), path)

	return path, nil
}
