// Package scheduler implements the water-balance irrigation scheduling
// engine: ET0 estimation, crop water demand, soil-moisture deficit
// reasoning, irrigation-method selection and the forward day-by-day
// schedule simulation.
//
// The engine is a pure synchronous computation. It performs no I/O,
// holds no state between calls and returns freshly constructed value
// objects, so the same Engine may serve any number of goroutines.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/agrosphere/smartfarm/internal/model/entities"
)

// ErrInvalidInput reports a caller contract violation (out-of-range soil
// moisture, non-positive area, malformed rainfall forecast). Check with
// errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Engine computes irrigation recommendations from injected lookup
// tables. Construct with NewEngine; the zero value is not usable.
type Engine struct {
	crops entities.CropCoefficientTable
	soils entities.SoilPropertyTable
}

// NewEngine builds an engine around the given tables. Nil tables fall
// back to the calibrated defaults.
func NewEngine(crops entities.CropCoefficientTable, soils entities.SoilPropertyTable) *Engine {
	if crops == nil {
		crops = entities.DefaultCropCoefficients()
	}
	if soils == nil {
		soils = entities.DefaultSoilProperties()
	}
	return &Engine{crops: crops, soils: soils}
}

// Recommend produces the irrigation plan for a single day. now anchors
// the scheduled-irrigation timing window, so for a fixed now and fixed
// inputs the result is fully deterministic.
func (e *Engine) Recommend(field entities.FieldState, weather entities.WeatherObservation, now time.Time) (entities.IrrigationPlan, error) {
	if err := validateField(field); err != nil {
		return entities.IrrigationPlan{}, err
	}
	if err := validateRainForecast(weather.RainForecastMM); err != nil {
		return entities.IrrigationPlan{}, err
	}
	return e.recommend(field, weather, now), nil
}

// recommend runs the validated single-day pipeline:
// ET0 -> crop demand -> water balance -> method selection -> plan.
func (e *Engine) recommend(field entities.FieldState, weather entities.WeatherObservation, now time.Time) entities.IrrigationPlan {
	et0 := EstimateET0(weather.Temperature, weather.Humidity, weather.WindSpeed, weather.SolarRadiation)
	dailyNeed := e.CropWaterDemand(field.CropType, field.Stage, et0, field.AreaHectares)
	bal := e.waterBalance(field, dailyNeed, weather.RainForecastMM, now)
	method, efficiency := SelectMethod(field.Soil)

	applied := 0.0
	duration := 0.0
	if bal.shouldIrrigate {
		applied = bal.totalNeedM3 / efficiency
		flow := field.FlowRateM3h
		if flow <= 0 {
			flow = DefaultFlowRateM3h
		}
		duration = applied / flow
	}

	status := "needs_irrigation"
	if field.SoilMoisture >= bal.targetMoisture {
		status = "adequate"
	}

	return entities.IrrigationPlan{
		ShouldIrrigate: bal.shouldIrrigate,
		Recommendation: bal.recommendation,
		Water: entities.WaterRequirements{
			DailyNeedM3:            round2(dailyNeed),
			DeficitM3:              round2(bal.deficitM3),
			RainfallContributionM3: round2(bal.rainfallM3),
			TotalNeedM3:            round2(bal.totalNeedM3),
			AdjustedM3:             round2(applied),
		},
		Schedule: entities.ScheduleDetails{
			Timing:        bal.timing,
			DurationHours: round2(duration),
			Method:        method,
			EfficiencyPct: efficiency * 100,
		},
		Soil: entities.SoilStatus{
			CurrentMoisturePct: field.SoilMoisture * 100,
			TargetMoisturePct:  bal.targetMoisture * 100,
			FieldCapacityPct:   bal.props.FieldCapacity * 100,
			WiltingPointPct:    bal.props.WiltingPoint * 100,
			Status:             status,
		},
		Weather: entities.WeatherImpact{
			ET0:                round2(et0),
			ExpectedRainfallMM: bal.expectedRainMM,
			Temperature:        weather.Temperature,
		},
	}
}

func validateField(f entities.FieldState) error {
	if f.SoilMoisture < 0 || f.SoilMoisture > 1 {
		return fmt.Errorf("%w: soil moisture %.3f outside [0,1]", ErrInvalidInput, f.SoilMoisture)
	}
	if f.AreaHectares <= 0 {
		return fmt.Errorf("%w: field area %.3f ha, must be > 0", ErrInvalidInput, f.AreaHectares)
	}
	return nil
}

// validateRainForecast rejects malformed forecasts instead of silently
// truncating: a short slice would corrupt the 3-day rainfall window the
// decision rule depends on. A nil/empty forecast is fine and counts as
// zero rainfall.
func validateRainForecast(mm []float64) error {
	if len(mm) == 0 {
		return nil
	}
	if len(mm) < RainWindowDays {
		return fmt.Errorf("%w: rainfall forecast covers %d day(s), need at least %d", ErrInvalidInput, len(mm), RainWindowDays)
	}
	for i, v := range mm {
		if v < 0 {
			return fmt.Errorf("%w: negative rainfall %.2f mm at forecast day %d", ErrInvalidInput, v, i)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
