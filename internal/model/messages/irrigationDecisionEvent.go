package messages

import "time"

// IrrigationDecisionEvent is published by the advisor to record WHAT was
// recommended and WHY.
type IrrigationDecisionEvent struct {
	FieldID        string    `json:"field_id"`
	Crop           string    `json:"crop"`
	Stage          string    `json:"stage"`
	Recommendation string    `json:"recommendation"`
	TotalNeedM3    float64   `json:"total_need_m3"`
	AppliedM3      float64   `json:"applied_m3"`
	DurationHours  float64   `json:"duration_hours"`
	Method         string    `json:"method"`
	Timestamp      time.Time `json:"timestamp"`
}
