package core

import (
	"errors"
	"testing"

	"github.com/bikecast/bikecast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRequest returns the regression fixture request.
func validRequest() map[string]any {
	return map[string]any{
		"year":        1.0,
		"temperature": 28.0,
		"humidity":    55.0,
		"windspeed":   8.0,
		"season":      "Summer",
		"month":       "Jul",
		"weather":     "Clear",
		"weekday":     "Mon",
		"holiday":     0.0,
		"workingday":  1.0,
	}
}

// TestValidate tests that every request field is checked for presence.
func TestValidate(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		assert.NoError(t, Validate(validRequest()))
	})

	t.Run("optional fields absent", func(t *testing.T) {
		req := validRequest()
		delete(req, "holiday")
		delete(req, "workingday")
		assert.NoError(t, Validate(req))
	})

	t.Run("null value counts as present", func(t *testing.T) {
		req := validRequest()
		req["temperature"] = nil
		assert.NoError(t, Validate(req))
	})

	for _, field := range schema.RequiredFields {
		t.Run("missing "+field, func(t *testing.T) {
			req := validRequest()
			delete(req, field)

			err := Validate(req)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, field, ve.Field)
			assert.Equal(t, "Missing required field: "+field, err.Error())
		})
	}
}

// TestValidateFirstOffender tests that only the first missing field is reported.
func TestValidateFirstOffender(t *testing.T) {
	req := validRequest()
	delete(req, "weekday")
	delete(req, "humidity")
	delete(req, "season")

	var ve *ValidationError
	require.ErrorAs(t, Validate(req), &ve)
	assert.Equal(t, "humidity", ve.Field)
}

// TestValidateEmpty tests that an empty request reports the first required field.
func TestValidateEmpty(t *testing.T) {
	var ve *ValidationError
	require.ErrorAs(t, Validate(map[string]any{}), &ve)
	assert.Equal(t, "year", ve.Field)

	require.ErrorAs(t, Validate(nil), &ve)
	assert.Equal(t, "year", ve.Field)
}
