package entities

// Recommendation is the categorical outcome of the water-balance
// decision, evaluated in fixed priority order (rain defer > critical >
// scheduled > none).
type Recommendation string

const (
	RecommendDeferForRain       Recommendation = "defer_for_rain"
	RecommendIrrigateNow        Recommendation = "irrigate_now"
	RecommendIrrigateScheduled  Recommendation = "irrigate_scheduled"
	RecommendNoIrrigationNeeded Recommendation = "no_irrigation_needed"
)

// IrrigationMethod is the water delivery technique selected for a soil.
type IrrigationMethod string

const (
	MethodDrip      IrrigationMethod = "drip"
	MethodSprinkler IrrigationMethod = "sprinkler"
	MethodSurface   IrrigationMethod = "surface"
)

// IrrigationTiming is the recommended time window for applying water.
// Scheduled irrigation is steered toward the low-evaporation morning and
// evening windows.
type IrrigationTiming string

const (
	TimingNone            IrrigationTiming = ""
	TimingImmediate       IrrigationTiming = "immediate"
	TimingNowMorning      IrrigationTiming = "now_morning"
	TimingNowEvening      IrrigationTiming = "now_evening"
	TimingTomorrowMorning IrrigationTiming = "tomorrow_06:00"
)

// WaterRequirements breaks the recommendation down into volumes, all in
// cubic meters over the whole field.
type WaterRequirements struct {
	DailyNeedM3            float64 `json:"daily_need"`
	DeficitM3              float64 `json:"deficit"`
	RainfallContributionM3 float64 `json:"rainfall_contribution"`
	TotalNeedM3            float64 `json:"total_need"`
	AdjustedM3             float64 `json:"adjusted_for_efficiency"` // total inflated by method efficiency
}

// ScheduleDetails carries the actionable part of the plan.
type ScheduleDetails struct {
	Timing        IrrigationTiming `json:"optimal_time"`
	DurationHours float64          `json:"duration_hours"`
	Method        IrrigationMethod `json:"method"`
	EfficiencyPct float64          `json:"efficiency"`
}

// SoilStatus reports the moisture situation as percentages plus a
// qualitative label.
type SoilStatus struct {
	CurrentMoisturePct float64 `json:"current_moisture"`
	TargetMoisturePct  float64 `json:"target_moisture"`
	FieldCapacityPct   float64 `json:"field_capacity"`
	WiltingPointPct    float64 `json:"wilting_point"`
	Status             string  `json:"status"` // "adequate" or "needs_irrigation"
}

// WeatherImpact echoes the weather inputs the decision was based on.
type WeatherImpact struct {
	ET0                float64 `json:"et0"` // mm/day
	ExpectedRainfallMM float64 `json:"expected_rainfall_mm"`
	Temperature        float64 `json:"temperature"`
}

// IrrigationPlan is the per-day output of the engine. It is a value
// object: created fresh on every computation, never mutated afterwards,
// and safe to serialize as-is.
type IrrigationPlan struct {
	ShouldIrrigate bool              `json:"should_irrigate"`
	Recommendation Recommendation    `json:"recommendation"`
	Water          WaterRequirements `json:"water_requirements"`
	Schedule       ScheduleDetails   `json:"schedule"`
	Soil           SoilStatus        `json:"soil_status"`
	Weather        WeatherImpact     `json:"weather_impact"`
}

// DailyPlan is an IrrigationPlan tagged with its calendar day.
type DailyPlan struct {
	IrrigationPlan
	Date    string `json:"date"` // YYYY-MM-DD
	DayName string `json:"day_name"`
}

// WeeklySchedule is one DailyPlan per simulated forecast day.
type WeeklySchedule []DailyPlan
