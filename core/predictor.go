package core

import (
	"fmt"
	"math"

	"github.com/bikecast/bikecast/schema"
	"go.uber.org/zap"
)

// LinearPredictor evaluates the coefficient table on a request.
// It holds no mutable state and is safe for concurrent use.
type LinearPredictor struct {
	table       CoefficientTable
	builder     *FeatureBuilder
	scaleFactor float64
	logger      *zap.Logger
}

// NewLinearPredictor returns a predictor using the default table.
// A nil logger discards fallback diagnostics.
func NewLinearPredictor(scaling schema.Scaling, logger *zap.Logger) *LinearPredictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinearPredictor{
		table:       DefaultTable(),
		builder:     NewFeatureBuilder(scaling),
		scaleFactor: scaling.ScaleFactor,
		logger:      logger,
	}
}

// Table returns the coefficient table.
func (p *LinearPredictor) Table() CoefficientTable {
	return p.table
}

// Predict returns the rental count for req. It never fails: any computation
// problem is logged and reported as a zero count tagged fallback_zero.
func (p *LinearPredictor) Predict(req map[string]any) schema.PredictionResult {
	res, _ := p.Explain(req)
	return res
}

// Explain is Predict that also reports how each category was encoded.
func (p *LinearPredictor) Explain(req map[string]any) (res schema.PredictionResult, enc schema.Encodings) {
	defer func() {
		if r := recover(); r != nil {
			p.fallback(&ComputationError{Err: fmt.Errorf("panic: %v", r)}, req)
			res = fallbackResult()
		}
	}()

	fv, enc, err := p.builder.Build(req)
	if err != nil {
		p.fallback(err, req)
		return fallbackResult(), enc
	}

	count, err := p.count(fv)
	if err != nil {
		p.fallback(err, req)
		return fallbackResult(), enc
	}
	return schema.PredictionResult{Prediction: count, Computation: schema.ComputeOk}, enc
}

// PredictVector evaluates an already built vector.
func (p *LinearPredictor) PredictVector(fv schema.FeatureVector) schema.PredictionResult {
	count, err := p.count(fv)
	if err != nil {
		p.logger.Warn("prediction fell back to zero", zap.Error(err))
		return fallbackResult()
	}
	return schema.PredictionResult{Prediction: count, Computation: schema.ComputeOk}
}

func (p *LinearPredictor) count(fv schema.FeatureVector) (int, error) {
	candidate := p.table.Evaluate(fv) * p.scaleFactor
	if math.IsNaN(candidate) || math.IsInf(candidate, 0) {
		return 0, &ComputationError{Err: ErrNonFinite}
	}
	candidate = math.Max(0, candidate)
	if candidate >= math.MaxInt64 {
		return 0, &ComputationError{Err: fmt.Errorf("count %g out of range", candidate)}
	}
	return int(math.RoundToEven(candidate)), nil
}

func (p *LinearPredictor) fallback(err error, req map[string]any) {
	p.logger.Warn("prediction fell back to zero",
		zap.Error(err),
		zap.Any("request", req),
	)
}

func fallbackResult() schema.PredictionResult {
	return schema.PredictionResult{Prediction: 0, Computation: schema.ComputeFallbackZero}
}
