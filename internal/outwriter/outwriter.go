// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePrediction prints a single prediction using the configured output format.
func (ow *OutWriter) WritePrediction(pred schema.EnrichedPrediction, cfg *contract.Config) error {
	return WritePredictionResult(pred, cfg)
}

// WriteModel prints the model description using the configured output format.
func (ow *OutWriter) WriteModel(desc schema.ModelDescription, cfg *contract.Config) error {
	return WriteModelDescription(desc, cfg)
}
