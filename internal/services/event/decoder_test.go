package event

import (
	"encoding/json"
	"testing"
	"time"

	msg "github.com/agrosphere/smartfarm/internal/model/messages"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func decisionPayload(t *testing.T, fieldID string) []byte {
	t.Helper()
	b, err := json.Marshal(msg.IrrigationDecisionEvent{
		FieldID:        fieldID,
		Crop:           "tomato",
		Stage:          "mid",
		Recommendation: "irrigate_now",
		TotalNeedM3:    120.5,
		AppliedM3:      133.89,
		DurationHours:  2.68,
		Method:         "drip",
		Timestamp:      time.Date(2026, time.June, 15, 6, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestHandleDecision(t *testing.T) {
	var got []CommonEvent
	h := NewMQTTHandler(func(evt CommonEvent) { got = append(got, evt) })

	err := h.Handle("", &fakeMessage{
		topic:   "event/irrigationDecision/field-9",
		payload: decisionPayload(t, "field-9"),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("sink received %d events, want 1", len(got))
	}

	evt := got[0]
	if evt.EventType != "irrigation.decision" || evt.FieldID != "field-9" {
		t.Errorf("event = %+v, want irrigation.decision for field-9", evt)
	}
	if evt.Fields["recommendation"] != "irrigate_now" {
		t.Errorf("recommendation = %v, want irrigate_now", evt.Fields["recommendation"])
	}
	if evt.Fields["applied_m3"] != 133.89 {
		t.Errorf("applied_m3 = %v, want 133.89", evt.Fields["applied_m3"])
	}
}

func TestHandleFieldIDFromTopic(t *testing.T) {
	var got []CommonEvent
	h := NewMQTTHandler(func(evt CommonEvent) { got = append(got, evt) })

	// Payload without a field id: the topic supplies it.
	err := h.Handle("", &fakeMessage{
		topic:   "event/irrigationDecision/field-12",
		payload: decisionPayload(t, ""),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(got) != 1 || got[0].FieldID != "field-12" {
		t.Fatalf("got %+v, want field id from topic", got)
	}
}

func TestHandleIgnoresOtherTopics(t *testing.T) {
	called := false
	h := NewMQTTHandler(func(CommonEvent) { called = true })

	if err := h.Handle("", &fakeMessage{topic: "sensor/aggregated/field-1", payload: []byte("{}")}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if called {
		t.Error("sink called for a non-decision topic")
	}
}

func TestEventToPoint(t *testing.T) {
	evt, err := decodeDecision("event/irrigationDecision/field-9", decisionPayload(t, "field-9"))
	if err != nil {
		t.Fatal(err)
	}
	p := EventToPoint(evt)
	if p.Name() != "irrigation_event" {
		t.Errorf("measurement = %q, want irrigation_event", p.Name())
	}

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	if tags["field_id"] != "field-9" || tags["recommendation"] != "irrigate_now" {
		t.Errorf("tags = %v, want field_id and recommendation tags", tags)
	}

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	if fields["applied_m3"] != 133.89 {
		t.Errorf("applied_m3 field = %v, want 133.89", fields["applied_m3"])
	}
	if _, ok := fields["recommendation"]; ok {
		t.Error("recommendation should be a tag, not a field")
	}
}
