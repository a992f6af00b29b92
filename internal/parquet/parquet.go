// Package parquet provides data structures and functions for exporting bikecast
// prediction history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/bikecast/bikecast/schema"
	"github.com/parquet-go/parquet-go"
)

// Prediction represents a single served prediction with its request inputs.
// This struct maps to the bikecast_predictions database table.
type Prediction struct {
	// PredictionID is the unique identifier for this prediction
	PredictionID int64 `parquet:"prediction_id,snappy"`

	// RequestTime is when the prediction was served (stored as TIMESTAMP with nanosecond precision)
	RequestTime time.Time `parquet:"request_time,snappy"`

	// Source is the transport that served the request (api, cli, mcp)
	Source string `parquet:"source,snappy,dict"`

	Year        float64 `parquet:"yr,snappy"`
	Temperature float64 `parquet:"temperature,snappy"`
	Humidity    float64 `parquet:"humidity,snappy"`
	Windspeed   float64 `parquet:"windspeed,snappy"`

	Season  string `parquet:"season,snappy,dict"`
	Month   string `parquet:"mnth,snappy,dict"`
	Weather string `parquet:"weather,snappy,dict"`
	Weekday string `parquet:"weekday,snappy,dict"`

	Holiday    float64 `parquet:"holiday,snappy"`
	WorkingDay float64 `parquet:"workingday,snappy"`

	// Prediction is the estimated rental count
	Prediction int32 `parquet:"prediction,snappy"`

	// Computation is "ok" or "fallback_zero"
	Computation string `parquet:"computation,snappy,dict"`

	// DemandLabel is the High/Moderate/Low interpretation of Prediction
	DemandLabel string `parquet:"demand_label,snappy,dict"`
}

// WritePredictionsParquet writes a slice of Prediction structs to a Parquet file.
func WritePredictionsParquet(data []Prediction, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the Prediction struct tags
	writer := parquet.NewGenericWriter[Prediction](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertPredictionRecords converts schema.PredictionRecord to Prediction for Parquet export.
func ConvertPredictionRecords(records []schema.PredictionRecord) []Prediction {
	result := make([]Prediction, len(records))
	for i, record := range records {
		result[i] = Prediction{
			PredictionID: record.PredictionID,
			RequestTime:  record.RequestTime,
			Source:       record.Source,
			Year:         record.Year,
			Temperature:  record.Temperature,
			Humidity:     record.Humidity,
			Windspeed:    record.Windspeed,
			Season:       record.Season,
			Month:        record.Month,
			Weather:      record.Weather,
			Weekday:      record.Weekday,
			Holiday:      record.Holiday,
			WorkingDay:   record.WorkingDay,
			Prediction:   int32(record.Prediction),
			Computation:  record.Computation,
			DemandLabel:  schema.GetDemandLabel(record.Prediction),
		}
	}
	return result
}
