package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bikecast/bikecast/schema"
)

// Caller-facing messages.
const (
	MsgNotJSON     = "Request must be JSON"
	MsgInvalidJSON = "Invalid JSON data"
	MsgInternal    = "Internal server error"
)

// ValidationError reports the first required field missing from a request.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

// MalformedInputError reports a payload that could not be decoded.
// Only Reason is shown to callers.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return e.Reason
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// NewMalformedInputError wraps a transport decoding failure.
func NewMalformedInputError(reason string, err error) error {
	return &MalformedInputError{Reason: reason, Err: err}
}

// ComputationError reports a value that cannot take part in the model arithmetic.
// It never leaves the predictor.
type ComputationError struct {
	Field string
	Err   error
}

func (e *ComputationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("computation failed: %v", e.Err)
	}
	return fmt.Sprintf("computation failed on %s: %v", e.Field, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// ErrNonFinite is returned when the model produces NaN or an infinity.
var ErrNonFinite = errors.New("non-finite result")

// Classify maps an error to its outcome kind and HTTP status.
func Classify(err error) (schema.OutcomeKind, int) {
	if err == nil {
		return schema.OutcomeSuccess, http.StatusOK
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return schema.OutcomeValidation, http.StatusBadRequest
	}
	var me *MalformedInputError
	if errors.As(err, &me) {
		return schema.OutcomeMalformed, http.StatusBadRequest
	}
	return schema.OutcomeInternal, http.StatusInternalServerError
}

// OutcomeFromError builds the failure outcome for err. Internal errors carry
// a generic message so no detail reaches the caller.
func OutcomeFromError(err error) schema.Outcome {
	kind, status := Classify(err)
	msg := MsgInternal
	if kind == schema.OutcomeValidation || kind == schema.OutcomeMalformed {
		msg = err.Error()
	}
	return schema.Outcome{Kind: kind, Error: msg, StatusCode: status}
}
