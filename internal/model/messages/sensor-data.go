package messages

import "time"

// SensorData carries a soil-moisture reading for a field. Raw readings
// and aggregated ones share the shape; the advisor only acts on
// aggregated readings.
type SensorData struct {
	FieldID     string    `json:"field_id"`
	SensorID    string    `json:"sensor_id"`
	MoisturePct float64   `json:"moisture"` // volumetric soil moisture, percent 0-100
	Aggregated  bool      `json:"aggregated"`
	Timestamp   time.Time `json:"timestamp"`
}
