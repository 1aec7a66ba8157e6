package entities

import "strings"

// GrowthStage of a crop, determining its water-use coefficient.
type GrowthStage string

const (
	StageInitial     GrowthStage = "initial"
	StageDevelopment GrowthStage = "development"
	StageMid         GrowthStage = "mid"
	StageLate        GrowthStage = "late"
)

// CropCoefficients holds the Kc multiplier for each growth stage.
type CropCoefficients map[GrowthStage]float64

// CropCoefficientTable maps a crop type to its per-stage coefficients.
// Tables are injected into the engine and never mutated after construction.
type CropCoefficientTable map[string]CropCoefficients

// Kc returns the coefficient for (crop, stage). Unknown crops or stages
// fall back to the neutral multiplier 1.0 so an unfamiliar identifier
// still yields a usable, conservative estimate.
func (t CropCoefficientTable) Kc(crop string, stage GrowthStage) float64 {
	if stages, ok := t[strings.ToLower(strings.TrimSpace(crop))]; ok {
		if kc, ok := stages[stage]; ok {
			return kc
		}
	}
	return 1.0
}

// DefaultCropCoefficients returns the calibrated Kc table for the crops
// the platform ships with. Values follow the FAO-56 single-coefficient
// convention (dimensionless, typically 0.3–1.2).
func DefaultCropCoefficients() CropCoefficientTable {
	return CropCoefficientTable{
		"tomato": {
			StageInitial:     0.6,
			StageDevelopment: 0.7,
			StageMid:         1.15,
			StageLate:        0.8,
		},
		"potato": {
			StageInitial:     0.5,
			StageDevelopment: 0.75,
			StageMid:         1.15,
			StageLate:        0.75,
		},
		"corn": {
			StageInitial:     0.3,
			StageDevelopment: 0.7,
			StageMid:         1.2,
			StageLate:        0.6,
		},
		"wheat": {
			StageInitial:     0.3,
			StageDevelopment: 0.7,
			StageMid:         1.15,
			StageLate:        0.4,
		},
		"rice": {
			StageInitial:     1.05,
			StageDevelopment: 1.10,
			StageMid:         1.20,
			StageLate:        0.95,
		},
	}
}
