package advisor

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrosphere/smartfarm/internal/services/scheduler"
)

// Routes builds the advisor's HTTP surface.
func (s *Service) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fields", s.handleListFields)
	mux.HandleFunc("GET /fields/{id}/recommendation", s.handleRecommendation)
	mux.HandleFunc("GET /fields/{id}/schedule", s.handleSchedule)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Service) handleListFields(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": s.Fields()})
}

func (s *Service) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	plan, err := s.Recommendation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Service) handleSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := s.WeeklySchedule(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	n := len(s.fields)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "fields": n})
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadGateway // weather/provider trouble
	switch {
	case errors.Is(err, ErrUnknownField):
		code = http.StatusNotFound
	case errors.Is(err, scheduler.ErrInvalidInput):
		code = http.StatusBadRequest
	}
	if code == http.StatusBadGateway {
		log.Printf("advisor: upstream error: %v", err)
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// the status is already on the wire, logging is all that is left
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("advisor: encode response: %v", err)
	}
}
