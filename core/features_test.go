package core

import (
	"encoding/json"
	"testing"

	"github.com/bikecast/bikecast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildFeatures tests the feature vector built from the regression fixture.
func TestBuildFeatures(t *testing.T) {
	fv, enc, err := BuildFeatures(validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1.0, fv.Year)
	assert.Equal(t, 0.0, fv.Holiday)
	assert.Equal(t, 1.0, fv.WorkingDay)
	assert.InDelta(t, 0.7, fv.Temp, 1e-12)
	assert.InDelta(t, 0.7, fv.ATemp, 1e-12)
	assert.InDelta(t, 0.55, fv.Hum, 1e-12)
	assert.InDelta(t, 0.16, fv.Windspeed, 1e-12)

	assert.Equal(t, [3]float64{0, 1, 0}, fv.Seasons)
	assert.Equal(t, 1.0, fv.Months[6])
	assert.Equal(t, [2]float64{0, 0}, fv.Weather)
	assert.Equal(t, [7]float64{1, 0, 0, 0, 0, 0, 0}, fv.Weekdays)

	assert.Equal(t, schema.Encodings{
		Season:  schema.Matched,
		Month:   schema.Matched,
		Weather: schema.Matched,
		Weekday: schema.Matched,
	}, enc)
}

// TestBuildFeaturesOptionalDefaults tests holiday and workingday defaults.
func TestBuildFeaturesOptionalDefaults(t *testing.T) {
	req := validRequest()
	delete(req, "holiday")
	delete(req, "workingday")

	fv, _, err := BuildFeatures(req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fv.Holiday)
	assert.Equal(t, 1.0, fv.WorkingDay)
}

// TestBuildFeaturesFlagsPassThrough tests that flags are copied without range checks.
func TestBuildFeaturesFlagsPassThrough(t *testing.T) {
	req := validRequest()
	req["year"] = 7
	req["holiday"] = -3
	req["workingday"] = true

	fv, _, err := BuildFeatures(req)
	require.NoError(t, err)
	assert.Equal(t, 7.0, fv.Year)
	assert.Equal(t, -3.0, fv.Holiday)
	assert.Equal(t, 1.0, fv.WorkingDay)
}

// TestBuildFeaturesNoClamping tests that out-of-domain values normalize above 1.
func TestBuildFeaturesNoClamping(t *testing.T) {
	req := validRequest()
	req["temperature"] = 60.0
	req["humidity"] = 150.0
	req["windspeed"] = -25.0

	fv, _, err := BuildFeatures(req)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, fv.Temp, 1e-12)
	assert.InDelta(t, 1.5, fv.Hum, 1e-12)
	assert.InDelta(t, -0.5, fv.Windspeed, 1e-12)
}

// TestBuildFeaturesCustomScaling tests normalization with overridden maxima.
func TestBuildFeaturesCustomScaling(t *testing.T) {
	b := NewFeatureBuilder(schema.Scaling{TempMax: 20, HumidityMax: 50, WindspeedMax: 10, ScaleFactor: 1})
	fv, _, err := b.Build(validRequest())
	require.NoError(t, err)
	assert.InDelta(t, 1.4, fv.Temp, 1e-12)
	assert.InDelta(t, 1.1, fv.Hum, 1e-12)
	assert.InDelta(t, 0.8, fv.Windspeed, 1e-12)
}

// TestEncodeCategories tests one-hot encoding of every categorical field.
func TestEncodeCategories(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    any
		column   string
		outcome  func(schema.Encodings) schema.EncodingOutcome
		expected schema.EncodingOutcome
		hot      bool
	}{
		{"spring", "season", "Spring", "Spring", seasonOutcome, schema.Matched, true},
		{"winter", "season", "Winter", "Winter", seasonOutcome, schema.Matched, true},
		{"fall is baseline column", "season", "Fall", "", seasonOutcome, schema.Matched, false},
		{"unknown season", "season", "Monsoon", "", seasonOutcome, schema.Baseline, false},
		{"lowercase season", "season", "summer", "", seasonOutcome, schema.Baseline, false},
		{"numeric season", "season", 2.0, "", seasonOutcome, schema.Baseline, false},
		{"august", "month", "Aug", "Aug", monthOutcome, schema.Matched, true},
		{"september", "month", "Sep", "Sep", monthOutcome, schema.Matched, true},
		{"full month name", "month", "July", "", monthOutcome, schema.Baseline, false},
		{"light rainfall", "weather", "Light_rainfall", "Light_rainfall", weatherOutcome, schema.Matched, true},
		{"thunderstorm", "weather", "Thunderstorm", "Thunderstorm", weatherOutcome, schema.Matched, true},
		{"legacy thunderstorm", "weather", "Thunderstrom", "Thunderstorm", weatherOutcome, schema.Matched, true},
		{"clear", "weather", "Clear", "", weatherOutcome, schema.Matched, false},
		{"unknown weather", "weather", "Blizzard", "", weatherOutcome, schema.Baseline, false},
		{"thurs", "weekday", "Thurs", "Thurs", weekdayOutcome, schema.Matched, true},
		{"thu is not thurs", "weekday", "Thu", "Thurs", weekdayOutcome, schema.Baseline, false},
		{"sunday", "weekday", "Sun", "Sun", weekdayOutcome, schema.Matched, true},
		{"unknown weekday", "weekday", "Funday", "", weekdayOutcome, schema.Baseline, false},
	}

	groups := map[string][]string{
		"season":  {"Spring", "Summer", "Winter"},
		"month":   {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		"weather": {"Light_rainfall", "Thunderstorm"},
		"weekday": {"Mon", "Tue", "Wed", "Thurs", "Fri", "Sat", "Sun"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req[tt.field] = tt.value

			fv, enc, err := BuildFeatures(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tt.outcome(enc))

			for _, col := range groups[tt.field] {
				v, ok := fv.Value(col)
				require.True(t, ok)
				if tt.hot && col == tt.column {
					assert.Equal(t, 1.0, v, col)
				} else {
					assert.Equal(t, 0.0, v, col)
				}
			}
		})
	}
}

func seasonOutcome(e schema.Encodings) schema.EncodingOutcome  { return e.Season }
func monthOutcome(e schema.Encodings) schema.EncodingOutcome   { return e.Month }
func weatherOutcome(e schema.Encodings) schema.EncodingOutcome { return e.Weather }
func weekdayOutcome(e schema.Encodings) schema.EncodingOutcome { return e.Weekday }

// TestBuildFeaturesComputationError tests that non-numeric values are rejected.
func TestBuildFeaturesComputationError(t *testing.T) {
	tests := []struct {
		field string
		value any
	}{
		{"temperature", "hot"},
		{"humidity", "invalid"},
		{"windspeed", nil},
		{"year", []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			req := validRequest()
			req[tt.field] = tt.value

			_, _, err := BuildFeatures(req)
			var ce *ComputationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

// TestBuildFeaturesLenientFlags tests that unusable holiday and workingday values take defaults.
func TestBuildFeaturesLenientFlags(t *testing.T) {
	tests := []struct {
		name       string
		holiday    any
		workingDay any
		expHoliday float64
		expWorking float64
	}{
		{"null and word", nil, "yes", schema.DefaultHoliday, schema.DefaultWorkingDay},
		{"numeric strings", "1", " 0 ", 1, 0},
		{"object", map[string]any{"a": 1}, []any{1}, schema.DefaultHoliday, schema.DefaultWorkingDay},
		{"booleans", true, false, 1, 0},
	}

	p := newTestPredictor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req["holiday"] = tt.holiday
			req["workingday"] = tt.workingDay

			fv, _, err := BuildFeatures(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expHoliday, fv.Holiday)
			assert.Equal(t, tt.expWorking, fv.WorkingDay)

			res := p.Predict(req)
			assert.Equal(t, 695, res.Prediction)
			assert.Equal(t, schema.ComputeOk, res.Computation)
		})
	}
}

// TestBuildFeaturesMissingNumeric tests that an unvalidated request is rejected, not defaulted.
func TestBuildFeaturesMissingNumeric(t *testing.T) {
	req := validRequest()
	delete(req, "temperature")

	_, _, err := BuildFeatures(req)
	var ce *ComputationError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, errMissing)
}

// TestToFloat tests numeric coercion of decoded values.
func TestToFloat(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		expected  float64
		expectErr bool
	}{
		{"float64", 2.5, 2.5, false},
		{"float32", float32(1.5), 1.5, false},
		{"int", 3, 3, false},
		{"int64", int64(-4), -4, false},
		{"uint8", uint8(9), 9, false},
		{"json number", json.Number("12.25"), 12.25, false},
		{"bad json number", json.Number("x"), 0, true},
		{"true", true, 1, false},
		{"false", false, 0, false},
		{"string", "25", 0, true},
		{"nil", nil, 0, true},
		{"slice", []float64{1}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ToFloat(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
