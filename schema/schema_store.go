package schema

import "time"

// PredictionRecord represents a row from the bikecast_predictions table.
type PredictionRecord struct {
	PredictionID int64
	RequestTime  time.Time
	Source       string // transport that served the request
	Year         float64
	Temperature  float64
	Humidity     float64
	Windspeed    float64
	Season       string
	Month        string
	Weather      string
	Weekday      string
	Holiday      float64
	WorkingDay   float64
	Prediction   int
	Computation  string
}
