package scheduler

import (
	"math"
	"time"

	"github.com/agrosphere/smartfarm/internal/model/entities"
)

const (
	// Target moisture is 80% of field capacity.
	targetMoistureFactor = 0.8
	// Below 1.2x the wilting point the crop is in critical stress.
	criticalMoistureFactor = 1.2
	// More than this much rain expected in the window defers irrigation.
	rainDeferThresholdMM = 10.0
	// Calibrated constant folding root-zone depth into the deficit
	// volume conversion. Do not retune without recalibrating the model.
	rootZoneFactor = 0.3
)

// RainWindowDays is how many forecast days count toward the rainfall
// contribution and the rain-defer decision.
const RainWindowDays = 3

// balanceResult is the outcome of the soil water balance for one day.
type balanceResult struct {
	recommendation entities.Recommendation
	shouldIrrigate bool
	timing         entities.IrrigationTiming

	deficitM3      float64
	rainfallM3     float64
	totalNeedM3    float64
	expectedRainMM float64

	props          entities.SoilProperties
	targetMoisture float64
}

// waterBalance nets the crop's daily need against the moisture deficit
// and the expected rainfall, and picks the decision in fixed priority
// order: rain defer, critical, scheduled, none. First match wins.
func (e *Engine) waterBalance(field entities.FieldState, dailyNeedM3 float64, rainForecastMM []float64, now time.Time) balanceResult {
	props := e.soils.Properties(field.Soil)
	target := targetMoistureFactor * props.FieldCapacity

	deficit := math.Max(0, target-field.SoilMoisture)
	deficitM3 := deficit * field.AreaHectares * 10000 * rootZoneFactor

	expectedRain := 0.0
	for i, mm := range rainForecastMM {
		if i >= RainWindowDays {
			break
		}
		expectedRain += mm
	}
	rainfallM3 := expectedRain * field.AreaHectares * mmHectareToM3

	totalNeed := math.Max(0, dailyNeedM3+deficitM3-rainfallM3)

	res := balanceResult{
		deficitM3:      deficitM3,
		rainfallM3:     rainfallM3,
		totalNeedM3:    totalNeed,
		expectedRainMM: expectedRain,
		props:          props,
		targetMoisture: target,
	}

	switch {
	case expectedRain > rainDeferThresholdMM:
		res.recommendation = entities.RecommendDeferForRain
	case field.SoilMoisture < criticalMoistureFactor*props.WiltingPoint:
		res.recommendation = entities.RecommendIrrigateNow
		res.shouldIrrigate = true
		res.timing = entities.TimingImmediate
	case field.SoilMoisture < target:
		res.recommendation = entities.RecommendIrrigateScheduled
		res.shouldIrrigate = true
		res.timing = timingWindow(now)
	default:
		res.recommendation = entities.RecommendNoIrrigationNeeded
	}
	return res
}

// timingWindow places scheduled irrigation in a low-evaporation window:
// now if we are already in the morning [5,8) or evening [17,20) window,
// otherwise tomorrow at 06:00.
func timingWindow(now time.Time) entities.IrrigationTiming {
	switch h := now.Hour(); {
	case h >= 5 && h < 8:
		return entities.TimingNowMorning
	case h >= 17 && h < 20:
		return entities.TimingNowEvening
	default:
		return entities.TimingTomorrowMorning
	}
}
