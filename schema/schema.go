// Package schema has models and constants shared by all parts of bikecast.
package schema

// Feature column names for the scalar fields of a FeatureVector.
const (
	ColYear       = "yr"
	ColHoliday    = "holiday"
	ColWorkingDay = "workingday"
	ColTemp       = "temp"
	ColATemp      = "atemp"
	ColHum        = "hum"
	ColWindspeed  = "windspeed"
)

// PredictionRequest is a raw attribute mapping as decoded from a transport.
type PredictionRequest map[string]any

// Column is a single named value of a FeatureVector.
type Column struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FeatureVector is the fixed-width numeric record the model evaluates.
// It is derived per request and never mutated after construction.
type FeatureVector struct {
	Year       float64
	Holiday    float64
	WorkingDay float64

	Temp      float64 // temperature / temp max
	ATemp     float64 // mirrors Temp
	Hum       float64 // humidity / humidity max
	Windspeed float64 // windspeed / windspeed max

	Seasons  [3]float64  // Spring, Summer, Winter
	Months   [12]float64 // Jan..Dec
	Weather  [2]float64  // Light_rainfall, Thunderstorm
	Weekdays [7]float64  // Mon..Sun
}

// Columns returns every field of the vector in fixed column order.
func (fv FeatureVector) Columns() []Column {
	cols := make([]Column, 0, 7+len(fv.Seasons)+len(fv.Months)+len(fv.Weather)+len(fv.Weekdays))
	cols = append(cols,
		Column{ColYear, fv.Year},
		Column{ColHoliday, fv.Holiday},
		Column{ColWorkingDay, fv.WorkingDay},
		Column{ColTemp, fv.Temp},
		Column{ColATemp, fv.ATemp},
		Column{ColHum, fv.Hum},
		Column{ColWindspeed, fv.Windspeed},
	)
	for i, s := range AllSeasons {
		cols = append(cols, Column{string(s), fv.Seasons[i]})
	}
	for i, m := range AllMonths {
		cols = append(cols, Column{string(m), fv.Months[i]})
	}
	for i, w := range AllWeather {
		cols = append(cols, Column{string(w), fv.Weather[i]})
	}
	for i, d := range AllWeekdays {
		cols = append(cols, Column{string(d), fv.Weekdays[i]})
	}
	return cols
}

// Value looks up a single column by name.
func (fv FeatureVector) Value(name string) (float64, bool) {
	switch name {
	case ColYear:
		return fv.Year, true
	case ColHoliday:
		return fv.Holiday, true
	case ColWorkingDay:
		return fv.WorkingDay, true
	case ColTemp:
		return fv.Temp, true
	case ColATemp:
		return fv.ATemp, true
	case ColHum:
		return fv.Hum, true
	case ColWindspeed:
		return fv.Windspeed, true
	}
	for i, s := range AllSeasons {
		if name == string(s) {
			return fv.Seasons[i], true
		}
	}
	for i, m := range AllMonths {
		if name == string(m) {
			return fv.Months[i], true
		}
	}
	for i, w := range AllWeather {
		if name == string(w) {
			return fv.Weather[i], true
		}
	}
	for i, d := range AllWeekdays {
		if name == string(d) {
			return fv.Weekdays[i], true
		}
	}
	return 0, false
}

// Encodings records the encoding outcome of each categorical field.
type Encodings struct {
	Season  EncodingOutcome `json:"season"`
	Month   EncodingOutcome `json:"month"`
	Weather EncodingOutcome `json:"weather"`
	Weekday EncodingOutcome `json:"weekday"`
}

// PredictionResult is a non-negative rental count and how it was computed.
type PredictionResult struct {
	Prediction  int            `json:"prediction"`
	Computation ComputeOutcome `json:"computation"`
}

// Outcome is the tagged result of a service call. Exactly one of
// Result or Error is meaningful, depending on Kind.
type Outcome struct {
	Kind       OutcomeKind      `json:"kind"`
	Result     PredictionResult `json:"result"`
	Error      string           `json:"error,omitempty"`
	StatusCode int              `json:"status_code"`
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}
