package schema

// Scaling holds the normalization and denormalization constants.
type Scaling struct {
	TempMax      float64 `json:"temp_max"`
	HumidityMax  float64 `json:"humidity_max"`
	WindspeedMax float64 `json:"windspeed_max"`
	ScaleFactor  float64 `json:"scale_factor"`
}

// DefaultScaling returns the built-in scaling constants.
func DefaultScaling() Scaling {
	return Scaling{
		TempMax:      DefaultTempMax,
		HumidityMax:  DefaultHumidityMax,
		WindspeedMax: DefaultWindspeedMax,
		ScaleFactor:  DefaultScaleFactor,
	}
}

// Coefficient is a single weighted feature of the model.
type Coefficient struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// ModelDescription is the presentation view of the linear model.
type ModelDescription struct {
	Intercept    float64       `json:"intercept"`
	Coefficients []Coefficient `json:"coefficients"`
	Scaling      Scaling       `json:"scaling"`
	Columns      []string      `json:"columns"`
}

// EnrichedPrediction adds presentation data to a PredictionResult.
type EnrichedPrediction struct {
	Label string `json:"label"`
	PredictionResult
	Encodings Encodings      `json:"encodings"`
	Request   map[string]any `json:"request,omitempty"`
}

// Demand label thresholds.
const (
	HighDemandThreshold     = 1000
	ModerateDemandThreshold = 500
)

// GetDemandLabel returns a plain demand label for a predicted count.
func GetDemandLabel(count int) string {
	switch {
	case count > HighDemandThreshold:
		return "High"
	case count > ModerateDemandThreshold:
		return "Moderate"
	default:
		return "Low"
	}
}
