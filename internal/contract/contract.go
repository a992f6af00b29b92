// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/bikecast/bikecast/schema"

// HistoryManager defines the interface for managing the prediction history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for recording and reading served predictions.
type HistoryStore interface {
	// RecordPrediction stores a served prediction and returns its unique ID
	RecordPrediction(record schema.PredictionRecord) (int64, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllPredictions returns every stored prediction ordered by ID
	GetAllPredictions() ([]schema.PredictionRecord, error)

	// Close closes the underlying connection
	Close() error
}
