package scheduler

import "math"

// Empirical coefficient for estimating solar radiation from temperature
// when no measurement is available.
const radiationCoefficient = 0.16

// EstimateET0 computes the reference evapotranspiration rate (mm/day)
// from instantaneous weather. It is a simplified additive approximation
// of FAO Penman-Monteith: a radiation term plus a wind/vapor-deficit
// term. It is deliberately not the full radiative-balance equation.
//
// Out-of-range weather never produces an error; the result is clamped to
// be non-negative and must be treated as a best-effort estimate.
func EstimateET0(tempC, humidityPct, windMS float64, solarRadiation *float64) float64 {
	// Tetens saturation vapor pressure (kPa).
	es := 0.6108 * math.Exp((17.27*tempC)/(tempC+237.3))
	ea := es * (humidityPct / 100)
	vpd := es - ea

	rad := 0.0
	if solarRadiation != nil {
		rad = *solarRadiation
	} else {
		rad = radiationCoefficient * math.Sqrt(math.Max(tempC+20, 0))
	}

	// The aerodynamic factor has a pole at -15°C; drop the wind term
	// there instead of letting the division blow up into Inf or NaN.
	aero := 0.0
	if d := tempC + 15; math.Abs(d) > 1e-6 {
		aero = (0.9 * tempC / d) * windMS * vpd
	}

	et0 := (0.408*rad*(tempC+5))/100 + aero
	return math.Max(0, et0)
}
