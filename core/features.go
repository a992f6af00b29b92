package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bikecast/bikecast/schema"
)

var errMissing = errors.New("value is missing")

// FeatureBuilder turns a raw request into a FeatureVector.
type FeatureBuilder struct {
	scaling schema.Scaling
}

// NewFeatureBuilder returns a builder that normalizes with the given constants.
func NewFeatureBuilder(scaling schema.Scaling) *FeatureBuilder {
	return &FeatureBuilder{scaling: scaling}
}

// BuildFeatures builds a FeatureVector using the default scaling constants.
func BuildFeatures(req map[string]any) (schema.FeatureVector, schema.Encodings, error) {
	return NewFeatureBuilder(schema.DefaultScaling()).Build(req)
}

// Build derives the FeatureVector for req. Unrecognized categories encode as
// the baseline and are reported in the returned Encodings. A weighted numeric
// field that cannot be used in arithmetic yields a ComputationError. The
// holiday and workingday flags carry no weight and never fail.
func (b *FeatureBuilder) Build(req map[string]any) (schema.FeatureVector, schema.Encodings, error) {
	var fv schema.FeatureVector
	var enc schema.Encodings

	fv.Seasons, enc.Season = encodeSeason(req[schema.FieldSeason])
	fv.Months, enc.Month = encodeMonth(req[schema.FieldMonth])
	fv.Weather, enc.Weather = encodeWeather(req[schema.FieldWeather])
	fv.Weekdays, enc.Weekday = encodeWeekday(req[schema.FieldWeekday])

	var err error
	if fv.Year, err = numericField(req, schema.FieldYear, nil); err != nil {
		return schema.FeatureVector{}, enc, err
	}
	fv.Holiday = flagField(req, schema.FieldHoliday, schema.DefaultHoliday)
	fv.WorkingDay = flagField(req, schema.FieldWorkingDay, schema.DefaultWorkingDay)

	temperature, err := numericField(req, schema.FieldTemperature, nil)
	if err != nil {
		return schema.FeatureVector{}, enc, err
	}
	humidity, err := numericField(req, schema.FieldHumidity, nil)
	if err != nil {
		return schema.FeatureVector{}, enc, err
	}
	windspeed, err := numericField(req, schema.FieldWindspeed, nil)
	if err != nil {
		return schema.FeatureVector{}, enc, err
	}

	fv.Temp = temperature / b.scaling.TempMax
	fv.ATemp = fv.Temp
	fv.Hum = humidity / b.scaling.HumidityMax
	fv.Windspeed = windspeed / b.scaling.WindspeedMax

	return fv, enc, nil
}

// numericField reads a numeric field from req. A nil def marks the field as
// having no default.
func numericField(req map[string]any, field string, def *float64) (float64, error) {
	raw, ok := req[field]
	if !ok {
		if def != nil {
			return *def, nil
		}
		return 0, &ComputationError{Field: field, Err: errMissing}
	}
	v, err := ToFloat(raw)
	if err != nil {
		return 0, &ComputationError{Field: field, Err: err}
	}
	return v, nil
}

// flagField reads an unweighted flag. Values that do not coerce to a number,
// including null, take def.
func flagField(req map[string]any, field string, def float64) float64 {
	raw, ok := req[field]
	if !ok {
		return def
	}
	if v, err := ToFloat(raw); err == nil {
		return v
	}
	if s, ok := raw.(string); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return def
}

// ToFloat coerces a decoded value to float64. Booleans count as 0 or 1.
// Strings, null and composite values are rejected.
func ToFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, errors.New("value is null")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func encodeSeason(v any) ([3]float64, schema.EncodingOutcome) {
	var flags [3]float64
	s, _ := v.(string)
	if schema.Season(s) == schema.Fall {
		return flags, schema.Matched
	}
	for i, season := range schema.AllSeasons {
		if schema.Season(s) == season {
			flags[i] = 1
			return flags, schema.Matched
		}
	}
	return flags, schema.Baseline
}

func encodeMonth(v any) ([12]float64, schema.EncodingOutcome) {
	var flags [12]float64
	s, _ := v.(string)
	for i, month := range schema.AllMonths {
		if schema.Month(s) == month {
			flags[i] = 1
			return flags, schema.Matched
		}
	}
	return flags, schema.Baseline
}

func encodeWeather(v any) ([2]float64, schema.EncodingOutcome) {
	var flags [2]float64
	s, _ := v.(string)
	w := schema.Weather(s)
	switch w {
	case schema.Clear:
		return flags, schema.Matched
	case schema.LegacyThunderstorm:
		w = schema.Thunderstorm
	}
	for i, weather := range schema.AllWeather {
		if w == weather {
			flags[i] = 1
			return flags, schema.Matched
		}
	}
	return flags, schema.Baseline
}

func encodeWeekday(v any) ([7]float64, schema.EncodingOutcome) {
	var flags [7]float64
	s, _ := v.(string)
	for i, day := range schema.AllWeekdays {
		if schema.Weekday(s) == day {
			flags[i] = 1
			return flags, schema.Matched
		}
	}
	return flags, schema.Baseline
}
