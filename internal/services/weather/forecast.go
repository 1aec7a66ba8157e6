package weather

import (
	"github.com/agrosphere/smartfarm/internal/model/entities"
	"github.com/agrosphere/smartfarm/internal/services/scheduler"
)

// buildObservations maps provider days onto engine observations. Each
// day's rainfall forecast starts at that day and is zero-padded to the
// engine's decision window, so every observation passes engine
// validation even near the end of the horizon.
func buildObservations(daily []owmDaily) []entities.WeatherObservation {
	rain := make([]float64, len(daily))
	for i, d := range daily {
		rain[i] = d.Rain
	}

	obs := make([]entities.WeatherObservation, len(daily))
	for i, d := range daily {
		window := make([]float64, 0, len(daily)-i)
		window = append(window, rain[i:]...)
		for len(window) < scheduler.RainWindowDays {
			window = append(window, 0)
		}
		obs[i] = entities.WeatherObservation{
			Temperature:    d.Temp.Day,
			Humidity:       d.Humidity,
			WindSpeed:      d.WindSpeed,
			RainForecastMM: window,
		}
	}
	return obs
}
