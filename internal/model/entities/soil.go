package entities

// SoilType classifies a field's soil texture.
type SoilType string

const (
	SoilSandy SoilType = "sandy"
	SoilLoamy SoilType = "loamy"
	SoilClay  SoilType = "clay"
	SoilSilt  SoilType = "silt"
)

// SoilProperties describes the water-holding behaviour of a soil class.
// Invariant: 0 <= WiltingPoint < FieldCapacity <= 1, InfiltrationRate > 0.
type SoilProperties struct {
	FieldCapacity    float64 `json:"field_capacity"`    // volumetric fraction when fully wetted and drained
	WiltingPoint     float64 `json:"wilting_point"`     // volumetric fraction below which crops cannot extract water
	InfiltrationRate float64 `json:"infiltration_rate"` // mm/hour
}

// SoilPropertyTable maps a soil class to its properties.
type SoilPropertyTable map[SoilType]SoilProperties

// Properties returns the profile for the given soil class. Unknown
// classes fall back to the loamy profile, a safe middle-of-the-road
// default.
func (t SoilPropertyTable) Properties(soil SoilType) SoilProperties {
	if p, ok := t[soil]; ok {
		return p
	}
	if p, ok := t[SoilLoamy]; ok {
		return p
	}
	return SoilProperties{FieldCapacity: 0.25, WiltingPoint: 0.10, InfiltrationRate: 15}
}

// DefaultSoilProperties returns the calibrated soil profile table.
func DefaultSoilProperties() SoilPropertyTable {
	return SoilPropertyTable{
		SoilSandy: {FieldCapacity: 0.12, WiltingPoint: 0.04, InfiltrationRate: 30},
		SoilLoamy: {FieldCapacity: 0.25, WiltingPoint: 0.10, InfiltrationRate: 15},
		SoilClay:  {FieldCapacity: 0.35, WiltingPoint: 0.20, InfiltrationRate: 5},
		SoilSilt:  {FieldCapacity: 0.30, WiltingPoint: 0.12, InfiltrationRate: 10},
	}
}
