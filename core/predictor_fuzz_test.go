package core

import (
	"testing"

	"github.com/bikecast/bikecast/schema"
)

// FuzzPredict fuzzes the predictor with random numeric and categorical inputs.
func FuzzPredict(f *testing.F) {
	f.Add(1.0, 28.0, 55.0, 8.0, "Summer", "Jul", "Clear", "Mon")
	f.Add(0.0, -5.0, 90.0, 20.0, "Winter", "Jan", "Thunderstorm", "Sun")
	f.Add(1.0, 40.0, 100.0, 50.0, "Spring", "Aug", "Light_rainfall", "Thurs")
	f.Add(5.0, 1e308, -1e308, 0.0, "", "", "", "")

	p := NewLinearPredictor(schema.DefaultScaling(), nil)

	f.Fuzz(func(t *testing.T, year, temp, hum, wind float64, season, month, weather, weekday string) {
		res := p.Predict(map[string]any{
			"year":        year,
			"temperature": temp,
			"humidity":    hum,
			"windspeed":   wind,
			"season":      season,
			"month":       month,
			"weather":     weather,
			"weekday":     weekday,
		})
		if res.Prediction < 0 {
			t.Errorf("negative prediction %d", res.Prediction)
		}
		if res.Computation == schema.ComputeFallbackZero && res.Prediction != 0 {
			t.Errorf("fallback with non-zero prediction %d", res.Prediction)
		}
	})
}
