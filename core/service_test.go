package core

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/internal/history"
	"github.com/bikecast/bikecast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestService(store *history.MockHistoryStore, logger *zap.Logger) *Service {
	var hs contract.HistoryStore
	if store != nil {
		hs = store
	}
	svc := NewService(newTestPredictor(), hs, logger)
	svc.now = func() time.Time { return time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// TestServicePredictSuccess tests a successful prediction through the boundary.
func TestServicePredictSuccess(t *testing.T) {
	out := newTestService(nil, nil).Predict(validRequest())

	assert.True(t, out.OK())
	assert.Equal(t, schema.OutcomeSuccess, out.Kind)
	assert.Equal(t, http.StatusOK, out.StatusCode)
	assert.Equal(t, 695, out.Result.Prediction)
	assert.Empty(t, out.Error)
}

// TestServicePredictValidation tests that missing fields stop before computation.
func TestServicePredictValidation(t *testing.T) {
	store := new(history.MockHistoryStore)
	svc := newTestService(store, nil)

	for _, field := range schema.RequiredFields {
		t.Run(field, func(t *testing.T) {
			req := validRequest()
			delete(req, field)

			out := svc.Predict(req)
			assert.Equal(t, schema.OutcomeValidation, out.Kind)
			assert.Equal(t, http.StatusBadRequest, out.StatusCode)
			assert.Equal(t, "Missing required field: "+field, out.Error)
			assert.Zero(t, out.Result)
		})
	}

	store.AssertNotCalled(t, "RecordPrediction", mock.Anything)
}

// TestServicePredictFallbackIsSuccess tests that bad numbers still succeed with zero.
func TestServicePredictFallbackIsSuccess(t *testing.T) {
	req := validRequest()
	req["temperature"] = "invalid"

	out := newTestService(nil, nil).Predict(req)
	assert.Equal(t, schema.OutcomeSuccess, out.Kind)
	assert.Equal(t, http.StatusOK, out.StatusCode)
	assert.Equal(t, 0, out.Result.Prediction)
	assert.Equal(t, schema.ComputeFallbackZero, out.Result.Computation)
}

// TestServiceRecordsHistory tests that served predictions are recorded.
func TestServiceRecordsHistory(t *testing.T) {
	store := new(history.MockHistoryStore)
	store.On("RecordPrediction", mock.MatchedBy(func(r schema.PredictionRecord) bool {
		return r.Prediction == 695 &&
			r.Source == "cli" &&
			r.Season == "Summer" &&
			r.Temperature == 28.0 &&
			r.WorkingDay == 1.0 &&
			r.Computation == string(schema.ComputeOk)
	})).Return(int64(1), nil).Once()

	out := newTestService(store, nil).WithSource("cli").Predict(validRequest())
	assert.True(t, out.OK())
	store.AssertExpectations(t)
}

// TestServiceHistoryFailureIsLogged tests that store errors do not change the response.
func TestServiceHistoryFailureIsLogged(t *testing.T) {
	obsCore, logs := observer.New(zapcore.WarnLevel)
	store := new(history.MockHistoryStore)
	store.On("RecordPrediction", mock.Anything).Return(int64(0), errors.New("disk full"))

	out := newTestService(store, zap.New(obsCore)).Predict(validRequest())
	assert.True(t, out.OK())
	assert.Equal(t, 695, out.Result.Prediction)

	require.Equal(t, 1, logs.FilterMessage("failed to record prediction").Len())
}

// TestServiceUnhandledFailure tests that unexpected panics become a generic internal error.
func TestServiceUnhandledFailure(t *testing.T) {
	obsCore, logs := observer.New(zapcore.ErrorLevel)
	store := new(history.MockHistoryStore)
	store.On("RecordPrediction", mock.Anything).Run(func(mock.Arguments) {
		panic("connection pool exploded")
	})

	out := newTestService(store, zap.New(obsCore)).Predict(validRequest())
	assert.Equal(t, schema.OutcomeInternal, out.Kind)
	assert.Equal(t, http.StatusInternalServerError, out.StatusCode)
	assert.Equal(t, MsgInternal, out.Error)
	assert.NotContains(t, out.Error, "exploded")
	assert.Equal(t, 1, logs.Len())
}

// TestServicePredictExplained tests that encodings are reported with the outcome.
func TestServicePredictExplained(t *testing.T) {
	req := validRequest()
	req["weather"] = "Hail"

	out, enc := newTestService(nil, nil).PredictExplained(req)
	assert.True(t, out.OK())
	assert.Equal(t, schema.Baseline, enc.Weather)
	assert.Equal(t, schema.Matched, enc.Season)
}

// TestNewPredictionRecord tests flattening of requests into history rows.
func TestNewPredictionRecord(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	req := map[string]any{
		"year":        1,
		"temperature": "warm",
		"humidity":    40.0,
		"windspeed":   12.5,
		"season":      "Spring",
		"month":       3,
		"weather":     nil,
		"weekday":     "Fri",
	}
	rec := NewPredictionRecord(req, schema.PredictionResult{Prediction: 0, Computation: schema.ComputeFallbackZero}, at, "mcp")

	assert.Equal(t, at, rec.RequestTime)
	assert.Equal(t, "mcp", rec.Source)
	assert.Equal(t, 1.0, rec.Year)
	assert.Equal(t, 0.0, rec.Temperature)
	assert.Equal(t, 40.0, rec.Humidity)
	assert.Equal(t, 12.5, rec.Windspeed)
	assert.Equal(t, "Spring", rec.Season)
	assert.Equal(t, "3", rec.Month)
	assert.Equal(t, "", rec.Weather)
	assert.Equal(t, 0.0, rec.Holiday)
	assert.Equal(t, 1.0, rec.WorkingDay)
	assert.Equal(t, "fallback_zero", rec.Computation)
}

// TestEnrich tests labeling and request echo.
func TestEnrich(t *testing.T) {
	req := validRequest()
	e := Enrich(schema.PredictionResult{Prediction: 1200, Computation: schema.ComputeOk}, schema.Encodings{Season: schema.Matched}, req)
	assert.Equal(t, "High", e.Label)
	assert.Equal(t, 1200, e.Prediction)
	assert.Equal(t, schema.Matched, e.Encodings.Season)
	assert.Equal(t, req, e.Request)

	assert.Equal(t, "Low", Enrich(schema.PredictionResult{}, schema.Encodings{}, nil).Label)
}
