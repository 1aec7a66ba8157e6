package entities

// WeatherObservation is one day of weather input to the engine.
// Immutable per simulated day.
type WeatherObservation struct {
	Temperature    float64  `json:"temperature"`               // °C
	Humidity       float64  `json:"humidity"`                  // relative, 0–100
	WindSpeed      float64  `json:"wind_speed"`                // m/s
	SolarRadiation *float64 `json:"solar_radiation,omitempty"` // MJ/m²/day, estimated from temperature when nil

	// RainForecastMM holds the expected rainfall per day, in order,
	// starting at this observation's day. Nil or empty means no
	// forecast is available (treated as zero rainfall).
	RainForecastMM []float64 `json:"rainfall_forecast,omitempty"`
}
