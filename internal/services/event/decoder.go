// Package event persists irrigation decision events: MQTT in, InfluxDB
// out, with a small query API on top. The advisor emits decisions; this
// service is the collaborator that remembers them.
package event

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	msg "github.com/agrosphere/smartfarm/internal/model/messages"
)

// CommonEvent is the normalized form written to storage.
type CommonEvent struct {
	EventType     string // irrigation.decision
	SourceService string // advisor
	FieldID       string
	Severity      string // info|warning|error
	Fields        map[string]interface{}
	Timestamp     time.Time
}

// MQTTHandler turns MQTT messages into CommonEvents and hands them to
// the sink.
type MQTTHandler struct{ sink func(CommonEvent) }

func NewMQTTHandler(sink func(CommonEvent)) *MQTTHandler { return &MQTTHandler{sink: sink} }

func (h *MQTTHandler) Handle(_ string, m mqtt.Message) error {
	topic := m.Topic()
	if !strings.HasPrefix(topic, "event/irrigationDecision/") {
		return nil // ignore other topics
	}
	evt, err := decodeDecision(topic, m.Payload())
	if err != nil {
		return err
	}
	if h.sink != nil {
		h.sink(evt)
	}
	return nil
}

func decodeDecision(topic string, payload []byte) (CommonEvent, error) {
	var d msg.IrrigationDecisionEvent
	if err := json.Unmarshal(payload, &d); err != nil {
		return CommonEvent{}, err
	}
	fieldID := pickFieldID(topic, d.FieldID)
	if fieldID == "" {
		return CommonEvent{}, errors.New("decision: missing field id")
	}
	return CommonEvent{
		EventType:     "irrigation.decision",
		SourceService: "advisor",
		FieldID:       fieldID,
		Severity:      "info",
		Fields: map[string]interface{}{
			"recommendation": d.Recommendation,
			"crop":           d.Crop,
			"stage":          d.Stage,
			"total_need_m3":  d.TotalNeedM3,
			"applied_m3":     d.AppliedM3,
			"duration_hours": d.DurationHours,
			"method":         d.Method,
		},
		Timestamp: d.Timestamp,
	}, nil
}

// pickFieldID uses the payload, or the topic "event/irrigationDecision/{field}".
func pickFieldID(topic, fieldID string) string {
	if strings.TrimSpace(fieldID) != "" {
		return fieldID
	}
	suffix := strings.TrimPrefix(topic, "event/irrigationDecision/")
	if parts := strings.Split(suffix, "/"); len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return fieldID
}
