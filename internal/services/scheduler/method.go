package scheduler

import "github.com/agrosphere/smartfarm/internal/model/entities"

// DefaultFlowRateM3h is the nominal delivery rate used to derive the
// irrigation duration when the field carries no device-specific rate.
// It is a placeholder default, not a measured device capability.
const DefaultFlowRateM3h = 50.0

// SelectMethod maps a soil class to its irrigation delivery method and
// application efficiency. Sandy soil drains fast and favours drip; clay
// takes water slowly and is flooded at low efficiency; everything else
// gets sprinklers.
func SelectMethod(soil entities.SoilType) (entities.IrrigationMethod, float64) {
	switch soil {
	case entities.SoilSandy:
		return entities.MethodDrip, 0.90
	case entities.SoilClay:
		return entities.MethodSurface, 0.60
	default:
		return entities.MethodSprinkler, 0.75
	}
}
