package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bikecast/bikecast/core"
	"github.com/bikecast/bikecast/internal/outwriter"
	"github.com/bikecast/bikecast/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// predictCmd runs a single prediction from flags or a JSON document.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict rentals for a single day",
	Long: `Predict the daily rental count for one set of conditions.

The request comes from flags, or from a JSON object given with --input.
Use --input - to read the object from stdin. When --input is used, the
request flags are ignored.

Required: year, temperature, humidity, windspeed, season, month, weather, weekday.
Optional: holiday (default 0), workingday (default 1).

Examples:
  # Warm Monday in July
  bikecast predict --year 1 --temperature 28 --humidity 55 --windspeed 8 \
    --season Summer --month Jul --weather Clear --weekday Mon

  # Same request from a file, as JSON
  bikecast predict --input day.json --output json

  # From stdin
  echo '{"year": 1, ...}' | bikecast predict --input -`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		attrs, err := requestFromCommand(cmd, os.Stdin)
		if err != nil {
			return err
		}

		out, enc := newService("cli").PredictExplained(attrs)
		if !out.OK() {
			return errors.New(out.Error)
		}
		return outwriter.NewOutWriter().WritePrediction(core.Enrich(out.Result, enc, attrs), cfg)
	},
}

// requestFromCommand builds the request from --input or from the flags that were set.
func requestFromCommand(cmd *cobra.Command, stdin io.Reader) (map[string]any, error) {
	inputPath, _ := cmd.Flags().GetString("input")
	if inputPath != "" {
		return readRequest(inputPath, stdin)
	}
	return requestFromFlags(cmd.Flags()), nil
}

// requestFromFlags includes only flags that were set, so missing fields stay missing.
func requestFromFlags(flags *pflag.FlagSet) map[string]any {
	attrs := make(map[string]any)
	for _, field := range []string{
		schema.FieldYear, schema.FieldTemperature, schema.FieldHumidity, schema.FieldWindspeed,
		schema.FieldHoliday, schema.FieldWorkingDay,
	} {
		if flags.Changed(field) {
			v, _ := flags.GetFloat64(field)
			attrs[field] = v
		}
	}
	for _, field := range []string{schema.FieldSeason, schema.FieldMonth, schema.FieldWeather, schema.FieldWeekday} {
		if flags.Changed(field) {
			v, _ := flags.GetString(field)
			attrs[field] = v
		}
	}
	return attrs
}

// readRequest decodes a JSON object from path, or from stdin when path is "-".
func readRequest(path string, stdin io.Reader) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil || attrs == nil {
		return nil, errors.New(core.MsgInvalidJSON)
	}
	return attrs, nil
}
