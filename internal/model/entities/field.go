package entities

// FieldState is the snapshot of a field the engine decides on. The
// decision functions never mutate it; the simulator derives a fresh copy
// per simulated day.
type FieldState struct {
	ID           string      `json:"id"`             // unique field identifier
	CropType     string      `json:"crop_type"`      // e.g. "corn", "wheat"
	Stage        GrowthStage `json:"growth_stage"`   // current phenological stage
	Soil         SoilType    `json:"soil_type"`      // soil texture class
	AreaHectares float64     `json:"area_hectares"`  // > 0
	SoilMoisture float64     `json:"soil_moisture"`  // volumetric fraction in [0,1]
	FlowRateM3h  float64     `json:"flow_rate_m3h"`  // device delivery rate, 0 = nominal default
	Latitude     float64     `json:"latitude"`       // for the weather provider
	Longitude    float64     `json:"longitude"`
}
