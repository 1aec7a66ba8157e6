package event

import (
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// EventToPoint normalizes a CommonEvent into an InfluxDB point under
// the single "irrigation_event" measurement.
func EventToPoint(evt CommonEvent) *write.Point {
	// Tags (strings only)
	tags := map[string]string{
		"event_type":     evt.EventType,
		"source_service": evt.SourceService,
		"severity":       evt.Severity,
	}
	if evt.FieldID != "" {
		tags["field_id"] = evt.FieldID
	}
	if rec, ok := evt.Fields["recommendation"].(string); ok && rec != "" {
		tags["recommendation"] = rec
	}

	fields := map[string]interface{}{}
	for k, v := range evt.Fields {
		if k == "recommendation" {
			continue // already a tag
		}
		fields[k] = v
	}
	// guarantee at least one field per point
	if _, ok := fields["count"]; !ok {
		fields["count"] = int64(1)
	}

	return influxdb2.NewPoint("irrigation_event", tags, fields, evt.Timestamp)
}
