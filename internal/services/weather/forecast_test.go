package weather

import (
	"reflect"
	"testing"

	"github.com/agrosphere/smartfarm/internal/services/scheduler"
)

func TestBuildObservations(t *testing.T) {
	daily := []owmDaily{
		{Humidity: 40, WindSpeed: 3, Rain: 2},
		{Humidity: 50, WindSpeed: 2, Rain: 0},
		{Humidity: 60, WindSpeed: 1, Rain: 8},
		{Humidity: 70, WindSpeed: 5, Rain: 1},
	}
	daily[0].Temp.Day = 30
	daily[1].Temp.Day = 28
	daily[2].Temp.Day = 24
	daily[3].Temp.Day = 26

	obs := buildObservations(daily)
	if len(obs) != len(daily) {
		t.Fatalf("got %d observations, want %d", len(obs), len(daily))
	}

	if obs[0].Temperature != 30 || obs[0].Humidity != 40 || obs[0].WindSpeed != 3 {
		t.Errorf("day 0 mapped wrong: %+v", obs[0])
	}

	// Each day's rain window starts at that day.
	if want := []float64{2, 0, 8, 1}; !reflect.DeepEqual(obs[0].RainForecastMM, want) {
		t.Errorf("day 0 rain = %v, want %v", obs[0].RainForecastMM, want)
	}
	if want := []float64{8, 1, 0}; !reflect.DeepEqual(obs[2].RainForecastMM, want) {
		t.Errorf("day 2 rain = %v, want %v (zero padded)", obs[2].RainForecastMM, want)
	}
	if want := []float64{1, 0, 0}; !reflect.DeepEqual(obs[3].RainForecastMM, want) {
		t.Errorf("day 3 rain = %v, want %v (zero padded)", obs[3].RainForecastMM, want)
	}

	// Padded windows must satisfy the engine's validation length.
	for i, o := range obs {
		if len(o.RainForecastMM) < scheduler.RainWindowDays {
			t.Errorf("day %d rain window too short: %v", i, o.RainForecastMM)
		}
	}
}
