package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/agrosphere/smartfarm/internal/model/entities"
	"github.com/agrosphere/smartfarm/internal/services/scheduler"
)

type fakeProvider struct {
	forecast []entities.WeatherObservation
	err      error
}

func (f *fakeProvider) Forecast(_ context.Context, _, _ float64, _ int) ([]entities.WeatherObservation, error) {
	return f.forecast, f.err
}

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
}

func (p *fakePublisher) Publish(topic string, _ byte, _ bool, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}
func (p *fakePublisher) Close() {}

func dryForecast(days int) []entities.WeatherObservation {
	out := make([]entities.WeatherObservation, days)
	for i := range out {
		out[i] = entities.WeatherObservation{
			Temperature:    31,
			Humidity:       35,
			WindSpeed:      3,
			RainForecastMM: []float64{0, 0, 0},
		}
	}
	return out
}

func writeFieldsFile(t *testing.T) string {
	t.Helper()
	fields := []entities.FieldState{{
		ID:           "field-1",
		CropType:     "tomato",
		Stage:        entities.StageMid,
		Soil:         entities.SoilSandy,
		AreaHectares: 2,
		SoilMoisture: 0.03,
		Latitude:     41.9,
		Longitude:    12.5,
	}}
	b, err := json.Marshal(fields)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "fields-config.json")
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestService(t *testing.T, provider *fakeProvider, pub *fakePublisher) *Service {
	t.Helper()
	svc, err := NewService(
		scheduler.NewEngine(nil, nil),
		nil, // no sensor consumer in tests
		pub,
		provider,
		writeFieldsFile(t),
		"event/irrigationDecision/{field}",
		nil, // metrics optional
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRecommendationPublishesDecision(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(t, &fakeProvider{forecast: dryForecast(7)}, pub)

	plan, err := svc.Recommendation(context.Background(), "field-1")
	if err != nil {
		t.Fatalf("Recommendation: %v", err)
	}
	if !plan.ShouldIrrigate {
		t.Fatal("dry sandy field should irrigate")
	}
	if plan.Recommendation != entities.RecommendIrrigateNow {
		t.Errorf("recommendation = %q, want %q", plan.Recommendation, entities.RecommendIrrigateNow)
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.topics) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.topics))
	}
	if want := "event/irrigationDecision/field-1"; pub.topics[0] != want {
		t.Errorf("decision topic = %q, want %q", pub.topics[0], want)
	}
}

func TestRecommendationUnknownField(t *testing.T) {
	svc := newTestService(t, &fakeProvider{forecast: dryForecast(7)}, &fakePublisher{})

	_, err := svc.Recommendation(context.Background(), "no-such-field")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("error = %v, want ErrUnknownField", err)
	}
}

func TestWeeklyScheduleLength(t *testing.T) {
	svc := newTestService(t, &fakeProvider{forecast: dryForecast(7)}, &fakePublisher{})

	schedule, err := svc.WeeklySchedule(context.Background(), "field-1")
	if err != nil {
		t.Fatalf("WeeklySchedule: %v", err)
	}
	if len(schedule) != 7 {
		t.Errorf("schedule length = %d, want 7", len(schedule))
	}
}

func TestHTTPEndpoints(t *testing.T) {
	svc := newTestService(t, &fakeProvider{forecast: dryForecast(7)}, &fakePublisher{})
	ts := httptest.NewServer(svc.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/fields/field-1/recommendation")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recommendation status = %d, want 200", resp.StatusCode)
	}
	var plan entities.IrrigationPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if !plan.ShouldIrrigate {
		t.Error("decoded plan should recommend irrigation")
	}

	resp2, err := http.Get(ts.URL + "/fields/ghost/schedule")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("unknown field status = %d, want 404", resp2.StatusCode)
	}
}

func TestLoadFieldsRejectsBadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	bad := []entities.FieldState{{ID: "f", AreaHectares: 0}}
	b, _ := json.Marshal(bad)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFields(path); err == nil {
		t.Error("LoadFields accepted a field with zero area")
	}
}
