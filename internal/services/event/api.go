package event

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// Decision is the query-API view of a stored decision event.
type Decision struct {
	FieldID        string  `json:"field_id,omitempty"`
	Recommendation string  `json:"recommendation,omitempty"`
	AppliedM3      float64 `json:"applied_m3"`
	Time           string  `json:"time"` // RFC3339
}

type decisionQueryParams struct {
	Minutes   int
	Limit     int
	TimeoutMS int
}

func parseDecisionQuery(r *http.Request, defMin, defLim, defTOms int) decisionQueryParams {
	q := r.URL.Query()
	get := func(k string, def, min, max int) int {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				if n < min {
					return min
				}
				if max > 0 && n > max {
					return max
				}
				return n
			}
		}
		return def
	}
	return decisionQueryParams{
		Minutes:   get("minutes", defMin, 1, 7*24*60),
		Limit:     get("limit", defLim, 1, 500),
		TimeoutMS: get("timeout_ms", defTOms, 200, 5000),
	}
}

func buildFlux(bucket string, minutes, limit int) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == "irrigation_event" and r.event_type == "irrigation.decision")
  |> filter(fn: (r) => r._field == "applied_m3")
  |> keep(columns: ["_time","_value","field_id","recommendation"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, minutes, limit)
}

func runDecisionQuery(w http.ResponseWriter, r *http.Request, influx influxdb2.Client, org, bucket string, defMin, defLim int) {
	p := parseDecisionQuery(r, defMin, defLim, 2000)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(p.TimeoutMS)*time.Millisecond)
	defer cancel()

	api := influx.QueryAPI(org)
	res, err := api.Query(ctx, buildFlux(bucket, p.Minutes, p.Limit))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Error", "influx-query-error")
		_, _ = w.Write([]byte("[]"))
		return
	}
	defer func() { _ = res.Close() }()

	out := make([]Decision, 0, p.Limit)
	for res.Next() {
		rec := res.Record()

		var applied float64
		switch v := rec.Value().(type) {
		case float64:
			applied = v
		case int64:
			applied = float64(v)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				applied = f
			}
		}

		d := Decision{
			AppliedM3: applied,
			Time:      rec.Time().UTC().Format(time.RFC3339),
		}
		if v, ok := rec.ValueByKey("field_id").(string); ok {
			d.FieldID = v
		}
		if v, ok := rec.ValueByKey("recommendation").(string); ok {
			d.Recommendation = v
		}
		out = append(out, d)
	}
	if res.Err() != nil {
		w.Header().Set("X-Error", "influx-iter-error")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// NewDecisionsLatestHandler serves
// GET /events/decisions/latest?limit=20[&minutes=1440].
func NewDecisionsLatestHandler(influx influxdb2.Client, org, bucket string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runDecisionQuery(w, r, influx, org, bucket, 1440, 20)
	})
}
