package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// requestFieldOrder lists every request field in display order.
var requestFieldOrder = append(append([]string{}, schema.RequiredFields...), schema.FieldHoliday, schema.FieldWorkingDay)

// WritePredictionResult outputs a prediction, dispatching based on the output format configured.
func WritePredictionResult(pred schema.EnrichedPrediction, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, pred)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionCSV(w, pred)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionTable(w, pred, cfg)
		}, "Wrote table")
	}
	return nil
}

// writePredictionCSV writes one header row and one data row.
func writePredictionCSV(w io.Writer, pred schema.EnrichedPrediction) error {
	header := append(append([]string{}, requestFieldOrder...), "prediction", "label", "computation")
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		record := make([]string, 0, len(header))
		for _, field := range requestFieldOrder {
			record = append(record, formatValue(pred.Request[field]))
		}
		record = append(record,
			fmt.Sprintf("%d", pred.Prediction),
			pred.Label,
			string(pred.Computation),
		)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
}

// writePredictionTable generates and writes the human-readable table.
func writePredictionTable(w io.Writer, pred schema.EnrichedPrediction, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxTableValueWidth(cfg)
	var data [][]string
	for _, field := range requestFieldOrder {
		raw, ok := pred.Request[field]
		if !ok {
			continue
		}
		data = append(data, []string{field, contract.TruncateText(formatValue(raw), maxWidth)})
	}

	label := pred.Label
	if cfg.UseColors {
		label = contract.GetColorLabel(pred.Prediction)
	}
	data = append(data,
		[]string{"prediction", formatCount(pred.Prediction)},
		[]string{"demand", label},
	)

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if pred.Computation == schema.ComputeFallbackZero {
		if _, err := fmt.Fprintln(w, "Prediction fell back to zero: a numeric input could not be used."); err != nil {
			return err
		}
	}
	for _, note := range baselineNotes(pred.Encodings) {
		if _, err := fmt.Fprintln(w, note); err != nil {
			return err
		}
	}
	return nil
}

// baselineNotes lists categorical fields that matched no known value.
func baselineNotes(enc schema.Encodings) []string {
	fields := []struct {
		name    string
		outcome schema.EncodingOutcome
	}{
		{schema.FieldSeason, enc.Season},
		{schema.FieldMonth, enc.Month},
		{schema.FieldWeather, enc.Weather},
		{schema.FieldWeekday, enc.Weekday},
	}

	var notes []string
	for _, f := range fields {
		if f.outcome == schema.Baseline {
			notes = append(notes, fmt.Sprintf("Note: %s was not recognized and contributes nothing.", f.name))
		}
	}
	return notes
}
