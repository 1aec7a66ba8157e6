package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposed by the advisor.
type Metrics struct {
	ReadingsConsumed      prometheus.Counter
	Decisions             *prometheus.CounterVec
	RecommendationSeconds prometheus.Histogram
	WeatherErrors         prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReadingsConsumed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "smartfarm",
			Subsystem: "advisor",
			Name:      "readings_consumed_total",
			Help:      "Aggregated soil-moisture readings applied to field state.",
		}),
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartfarm",
			Subsystem: "advisor",
			Name:      "decisions_total",
			Help:      "Irrigation recommendations produced, by outcome.",
		}, []string{"recommendation"}),
		RecommendationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smartfarm",
			Subsystem: "advisor",
			Name:      "recommendation_seconds",
			Help:      "Wall time of a recommendation request, weather fetch included.",
			Buckets:   prometheus.DefBuckets,
		}),
		WeatherErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "smartfarm",
			Subsystem: "advisor",
			Name:      "weather_errors_total",
			Help:      "Failed forecast fetches.",
		}),
	}
}
