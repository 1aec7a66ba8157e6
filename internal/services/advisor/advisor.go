// Package advisor hosts the scheduling engine as a service: it keeps
// per-field soil moisture fresh from aggregated sensor readings and
// serves irrigation recommendations and weekly schedules on demand.
// The engine stays pure; all I/O lives here.
package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/agrosphere/smartfarm/internal/model/entities"
	"github.com/agrosphere/smartfarm/internal/model/messages"
	"github.com/agrosphere/smartfarm/internal/services/scheduler"
	"github.com/agrosphere/smartfarm/internal/services/weather"
	"github.com/agrosphere/smartfarm/pkg/dedup"
	"github.com/agrosphere/smartfarm/pkg/mqttbus"
)

// ErrUnknownField reports a recommendation request for a field the
// registry does not know.
var ErrUnknownField = errors.New("unknown field")

// Service wires the engine to its collaborators.
type Service struct {
	engine    *scheduler.Engine
	consumer  mqttbus.IConsumer[messages.SensorData]
	publisher mqttbus.IPublisher
	weather   weather.ForecastProvider

	decisionTopicTmpl string
	horizonDays       int
	metrics           *Metrics

	// deduper drops QoS1 redeliveries before they reach the handler
	deduper *dedup.Deduper

	mu     sync.RWMutex
	fields map[string]entities.FieldState
}

func NewService(
	engine *scheduler.Engine,
	consumer mqttbus.IConsumer[messages.SensorData],
	publisher mqttbus.IPublisher,
	provider weather.ForecastProvider,
	fieldsPath string,
	decisionTopicTmpl string,
	metrics *Metrics,
) (*Service, error) {
	if engine == nil {
		return nil, errors.New("engine is nil")
	}
	if provider == nil {
		return nil, errors.New("weather provider is nil")
	}

	fields, err := LoadFields(fieldsPath)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	s := &Service{
		engine:            engine,
		consumer:          consumer,
		publisher:         publisher,
		weather:           provider,
		decisionTopicTmpl: firstNonEmpty(decisionTopicTmpl, "event/irrigationDecision/{field}"),
		horizonDays:       scheduler.DefaultHorizonDays,
		metrics:           metrics,
		deduper:           dedup.New(10*time.Minute, 20000),
		fields:            fields,
	}
	if consumer != nil {
		consumer.SetHandler(s.handleAggregated)
	}
	return s, nil
}

// Start runs the sensor consumer until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	if s.consumer != nil {
		go s.consumer.ConsumeMessage(ctx)
	}
	<-ctx.Done()
}

// handleAggregated applies an aggregated soil-moisture reading to the
// cached field state. Raw (non-aggregated) readings are ignored.
func (s *Service) handleAggregated(_ string, msg mqtt.Message) error {
	h := sha256.Sum256(msg.Payload())
	if s.deduper != nil && !s.deduper.ShouldProcess(hex.EncodeToString(h[:])) {
		return nil
	}

	var d messages.SensorData
	if err := json.Unmarshal(msg.Payload(), &d); err != nil {
		log.Printf("advisor: bad payload: %v", err)
		return nil
	}
	if !d.Aggregated {
		return nil
	}

	moisture := d.MoisturePct / 100
	if moisture < 0 {
		moisture = 0
	}
	if moisture > 1 {
		moisture = 1
	}

	s.mu.Lock()
	f, ok := s.fields[d.FieldID]
	if ok {
		f.SoilMoisture = moisture
		s.fields[d.FieldID] = f
	}
	s.mu.Unlock()

	if !ok {
		log.Printf("advisor: reading for unknown field %s", d.FieldID)
		return nil
	}
	if s.metrics != nil {
		s.metrics.ReadingsConsumed.Inc()
	}
	log.Printf("advisor: %s moisture=%.1f%% at=%s", d.FieldID, d.MoisturePct, d.Timestamp.UTC().Format(time.RFC3339))
	return nil
}

// Recommendation computes the single-day plan for a field from its
// current state and a fresh forecast, and publishes a decision event
// when irrigation is recommended.
func (s *Service) Recommendation(ctx context.Context, fieldID string) (entities.IrrigationPlan, error) {
	start := time.Now()

	field, ok := s.field(fieldID)
	if !ok {
		return entities.IrrigationPlan{}, fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}

	forecast, err := s.weather.Forecast(ctx, field.Latitude, field.Longitude, s.horizonDays)
	if err != nil {
		if s.metrics != nil {
			s.metrics.WeatherErrors.Inc()
		}
		return entities.IrrigationPlan{}, err
	}
	if len(forecast) == 0 {
		return entities.IrrigationPlan{}, errors.New("advisor: empty forecast from provider")
	}

	plan, err := s.engine.Recommend(field, forecast[0], time.Now())
	if err != nil {
		return entities.IrrigationPlan{}, err
	}

	if s.metrics != nil {
		s.metrics.Decisions.WithLabelValues(string(plan.Recommendation)).Inc()
		s.metrics.RecommendationSeconds.Observe(time.Since(start).Seconds())
	}

	if plan.ShouldIrrigate {
		if err := s.publishDecision(field, plan); err != nil {
			log.Printf("advisor: publish decision error: %v", err)
		}
	}
	return plan, nil
}

// WeeklySchedule simulates the forward schedule for a field over the
// provider's forecast horizon.
func (s *Service) WeeklySchedule(ctx context.Context, fieldID string) (entities.WeeklySchedule, error) {
	field, ok := s.field(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}

	forecast, err := s.weather.Forecast(ctx, field.Latitude, field.Longitude, s.horizonDays)
	if err != nil {
		if s.metrics != nil {
			s.metrics.WeatherErrors.Inc()
		}
		return nil, err
	}

	schedule, err := s.engine.Simulate(field, forecast, time.Now())
	if err != nil {
		return nil, err
	}
	for _, day := range schedule {
		if s.metrics != nil {
			s.metrics.Decisions.WithLabelValues(string(day.Recommendation)).Inc()
		}
	}
	return schedule, nil
}

// Fields returns the registered field IDs, for the listing endpoint.
func (s *Service) Fields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.fields))
	for id := range s.fields {
		ids = append(ids, id)
	}
	return ids
}

func (s *Service) field(id string) (entities.FieldState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fields[id]
	return f, ok
}

func (s *Service) publishDecision(field entities.FieldState, plan entities.IrrigationPlan) error {
	if s.publisher == nil {
		return nil
	}
	evt := messages.IrrigationDecisionEvent{
		FieldID:        field.ID,
		Crop:           field.CropType,
		Stage:          string(field.Stage),
		Recommendation: string(plan.Recommendation),
		TotalNeedM3:    plan.Water.TotalNeedM3,
		AppliedM3:      plan.Water.AdjustedM3,
		DurationHours:  plan.Schedule.DurationHours,
		Method:         string(plan.Schedule.Method),
		Timestamp:      time.Now().UTC(),
	}
	b, _ := json.Marshal(evt)
	topic := strings.ReplaceAll(s.decisionTopicTmpl, "{field}", field.ID)

	// decisions go out at QoS 1; the event service dedups redeliveries
	if err := s.publisher.Publish(topic, 1, false, b); err != nil {
		return err
	}
	log.Printf("advisor: decision %s %s applied=%.1fm3 dur=%.2fh topic=%s",
		field.ID, plan.Recommendation, plan.Water.AdjustedM3, plan.Schedule.DurationHours, topic)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
