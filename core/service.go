package core

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bikecast/bikecast/internal/contract"
	"github.com/bikecast/bikecast/schema"
	"go.uber.org/zap"
)

// Service is the boundary every transport calls into. It validates a request,
// runs the predictor and records the result when a history store is set.
type Service struct {
	predictor *LinearPredictor
	history   contract.HistoryStore
	logger    *zap.Logger
	source    string
	now       func() time.Time
}

// NewService returns a Service. history and logger may be nil.
func NewService(predictor *LinearPredictor, history contract.HistoryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		predictor: predictor,
		history:   history,
		logger:    logger,
		source:    "api",
		now:       time.Now,
	}
}

// WithSource returns a copy of the Service that tags history records with source.
func (s *Service) WithSource(source string) *Service {
	clone := *s
	clone.source = source
	return &clone
}

// Predictor returns the underlying predictor.
func (s *Service) Predictor() *LinearPredictor {
	return s.predictor
}

// Predict maps an attribute set to a tagged outcome.
func (s *Service) Predict(attrs map[string]any) schema.Outcome {
	out, _ := s.PredictExplained(attrs)
	return out
}

// PredictExplained is Predict that also returns the category encodings.
func (s *Service) PredictExplained(attrs map[string]any) (out schema.Outcome, enc schema.Encodings) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("unhandled failure during prediction",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			out = OutcomeFromError(fmt.Errorf("unhandled: %v", r))
		}
	}()

	if err := Validate(attrs); err != nil {
		return OutcomeFromError(err), enc
	}

	res, enc := s.predictor.Explain(attrs)
	s.record(attrs, res)

	return schema.Outcome{
		Kind:       schema.OutcomeSuccess,
		Result:     res,
		StatusCode: http.StatusOK,
	}, enc
}

// record stores a served prediction. Failures are logged and otherwise ignored.
func (s *Service) record(attrs map[string]any, res schema.PredictionResult) {
	if s.history == nil {
		return
	}
	rec := NewPredictionRecord(attrs, res, s.now(), s.source)
	if _, err := s.history.RecordPrediction(rec); err != nil {
		s.logger.Warn("failed to record prediction", zap.Error(err))
	}
}

// NewPredictionRecord flattens a request and its result into a history row.
// Values that are not numbers are stored as zero.
func NewPredictionRecord(attrs map[string]any, res schema.PredictionResult, at time.Time, source string) schema.PredictionRecord {
	num := func(field string, def float64) float64 {
		raw, ok := attrs[field]
		if !ok {
			return def
		}
		v, err := ToFloat(raw)
		if err != nil {
			return 0
		}
		return v
	}
	str := func(field string) string {
		raw, ok := attrs[field]
		if !ok || raw == nil {
			return ""
		}
		if s, ok := raw.(string); ok {
			return s
		}
		return fmt.Sprint(raw)
	}

	return schema.PredictionRecord{
		RequestTime: at,
		Source:      source,
		Year:        num(schema.FieldYear, 0),
		Temperature: num(schema.FieldTemperature, 0),
		Humidity:    num(schema.FieldHumidity, 0),
		Windspeed:   num(schema.FieldWindspeed, 0),
		Season:      str(schema.FieldSeason),
		Month:       str(schema.FieldMonth),
		Weather:     str(schema.FieldWeather),
		Weekday:     str(schema.FieldWeekday),
		Holiday:     num(schema.FieldHoliday, schema.DefaultHoliday),
		WorkingDay:  num(schema.FieldWorkingDay, schema.DefaultWorkingDay),
		Prediction:  res.Prediction,
		Computation: string(res.Computation),
	}
}

// Enrich attaches the demand label, encodings and the request echo to a result.
// attrs may be nil.
func Enrich(res schema.PredictionResult, enc schema.Encodings, attrs map[string]any) schema.EnrichedPrediction {
	return schema.EnrichedPrediction{
		Label:            schema.GetDemandLabel(res.Prediction),
		PredictionResult: res,
		Encodings:        enc,
		Request:          attrs,
	}
}
