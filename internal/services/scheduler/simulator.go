package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/agrosphere/smartfarm/internal/model/entities"
)

// DefaultHorizonDays is the usual forecast length fed to Simulate.
const DefaultHorizonDays = 7

// Simplified moisture-dynamics proxy used to carry soil moisture from
// one simulated day to the next. Not a physical infiltration model; the
// bounds and increments are calibrated and must be kept as-is.
const (
	irrigationMoistureGain = 0.05
	naturalMoistureDecline = 0.02
	minSimulatedMoisture   = 0.10
	maxSimulatedMoisture   = 0.40
)

// Simulate runs the single-day pipeline once per forecast day, threading
// soil moisture across days: irrigation days gain moisture, every day
// loses some to evaporation and drainage, and the carried value is
// clamped to a plausible range. Day i is tagged start+i days.
//
// The schedule length always equals len(forecast); recomputing with
// identical inputs yields an identical schedule.
func (e *Engine) Simulate(field entities.FieldState, forecast []entities.WeatherObservation, start time.Time) (entities.WeeklySchedule, error) {
	if err := validateField(field); err != nil {
		return nil, err
	}

	moisture := field.SoilMoisture
	schedule := make(entities.WeeklySchedule, 0, len(forecast))

	for i, day := range forecast {
		if err := validateRainForecast(day.RainForecastMM); err != nil {
			return nil, fmt.Errorf("forecast day %d: %w", i, err)
		}

		state := field
		state.SoilMoisture = moisture
		date := start.AddDate(0, 0, i)

		plan := e.recommend(state, day, date)
		schedule = append(schedule, entities.DailyPlan{
			IrrigationPlan: plan,
			Date:           date.Format("2006-01-02"),
			DayName:        date.Weekday().String(),
		})

		if plan.ShouldIrrigate {
			moisture += irrigationMoistureGain
		}
		moisture -= naturalMoistureDecline
		moisture = math.Max(minSimulatedMoisture, math.Min(maxSimulatedMoisture, moisture))
	}
	return schedule, nil
}
