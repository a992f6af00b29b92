// Package core has the request-to-prediction pipeline: validation, feature
// building and evaluation of the fixed linear model.
package core

import (
	"slices"

	"github.com/bikecast/bikecast/schema"
)

// CoefficientTable is the fitted linear model: an intercept plus weights for
// a subset of FeatureVector columns. Columns without a weight contribute nothing.
type CoefficientTable struct {
	intercept float64
	entries   []schema.Coefficient
}

// defaultTable is built once and never modified.
var defaultTable = CoefficientTable{
	intercept: 0.3535,
	entries: []schema.Coefficient{
		{Feature: schema.ColYear, Weight: 0.228},
		{Feature: schema.ColTemp, Weight: 0.526},
		{Feature: schema.ColHum, Weight: -0.189},
		{Feature: schema.ColWindspeed, Weight: -0.165},
		{Feature: string(schema.Spring), Weight: -0.113},
		{Feature: string(schema.Winter), Weight: 0.045},
		{Feature: string(schema.Jul), Weight: -0.124},
		{Feature: string(schema.Jun), Weight: -0.05},
		{Feature: string(schema.Aug), Weight: -0.59},
		{Feature: string(schema.LightRainfall), Weight: -0.045},
		{Feature: string(schema.Thunderstorm), Weight: -0.203},
	},
}

// DefaultTable returns the built-in coefficient table.
func DefaultTable() CoefficientTable {
	return defaultTable
}

// Intercept returns the constant term.
func (t CoefficientTable) Intercept() float64 {
	return t.intercept
}

// Coefficients returns a copy of the weighted features in evaluation order.
func (t CoefficientTable) Coefficients() []schema.Coefficient {
	return slices.Clone(t.entries)
}

// Weight returns the weight for a feature and whether it has one.
func (t CoefficientTable) Weight(feature string) (float64, bool) {
	for _, e := range t.entries {
		if e.Feature == feature {
			return e.Weight, true
		}
	}
	return 0, false
}

// Evaluate returns intercept + sum(weight * value) over the weighted features.
func (t CoefficientTable) Evaluate(fv schema.FeatureVector) float64 {
	acc := t.intercept
	for _, e := range t.entries {
		if v, ok := fv.Value(e.Feature); ok {
			acc += e.Weight * v
		}
	}
	return acc
}

// Describe returns the presentation view of the model under the given scaling.
func (t CoefficientTable) Describe(scaling schema.Scaling) schema.ModelDescription {
	cols := schema.FeatureVector{}.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return schema.ModelDescription{
		Intercept:    t.intercept,
		Coefficients: t.Coefficients(),
		Scaling:      scaling,
		Columns:      names,
	}
}
