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

// interceptName labels the intercept row in tabular output.
const interceptName = "const"

// WriteModelDescription displays the coefficient table and scaling constants.
// This is a static display that does not require a request.
func WriteModelDescription(desc schema.ModelDescription, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, desc)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelCSV(w, desc)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelText(w, desc)
		}, "Wrote text")
	}
}

func writeModelCSV(w io.Writer, desc schema.ModelDescription) error {
	return writeCSVWithHeader(w, []string{"Feature", "Weight"}, func(cw *csv.Writer) error {
		if err := cw.Write([]string{interceptName, formatFloat(desc.Intercept)}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		for _, c := range desc.Coefficients {
			if err := cw.Write([]string{c.Feature, formatFloat(c.Weight)}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeModelText(w io.Writer, desc schema.ModelDescription) error {
	if _, err := fmt.Fprintf(w, "🚲 Bike Rental Demand Model\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "===========================\n\n"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Feature", "Weight"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{{interceptName, formatFloat(desc.Intercept)}}
	for _, c := range desc.Coefficients {
		data = append(data, []string{c.Feature, formatFloat(c.Weight)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := desc.Scaling
	lines := []string{
		"",
		"Scaling",
		fmt.Sprintf("   temp = temperature / %s", formatFloat(s.TempMax)),
		fmt.Sprintf("   hum = humidity / %s", formatFloat(s.HumidityMax)),
		fmt.Sprintf("   windspeed = windspeed / %s", formatFloat(s.WindspeedMax)),
		fmt.Sprintf("   count = round(max(0, score) * %s)", formatFloat(s.ScaleFactor)),
		"",
		fmt.Sprintf("Feature columns: %d (unlisted columns have weight 0)", len(desc.Columns)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
