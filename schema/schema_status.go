package schema

import "time"

// HistoryStatus represents the status of the prediction history store.
type HistoryStatus struct {
	Backend           string           `json:"backend"`
	Connected         bool             `json:"connected"`
	TotalPredictions  int              `json:"total_predictions"`
	LastPredictionID  int64            `json:"last_prediction_id"`
	LastRequestTime   time.Time        `json:"last_request_time"`
	OldestRequestTime time.Time        `json:"oldest_request_time"`
	FallbackCount     int              `json:"fallback_count"`
	TableSizes        map[string]int64 `json:"table_sizes"`
	TableSizeBytes    int64            `json:"table_size_bytes"`
}
