// Package weather integrates the external forecast provider. It owns
// its own timeouts, retries and circuit breaking; consumers receive an
// ordered, validated per-day forecast ready for the scheduling engine.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/agrosphere/smartfarm/internal/model/entities"
)

// ForecastProvider returns up to days of per-day weather observations
// for a location, ordered from today onward.
type ForecastProvider interface {
	Forecast(ctx context.Context, lat, lon float64, days int) ([]entities.WeatherObservation, error)
}

type owmDaily struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Day float64 `json:"day"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	Rain      float64 `json:"rain"`
}

type owmResp struct {
	Daily []owmDaily `json:"daily"`
}

// OWMClient fetches daily forecasts from the OpenWeatherMap One Call
// API. Calls go through a circuit breaker; transient failures are
// retried with exponential backoff.
type OWMClient struct {
	apiKey  string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewOWMClient(key string, timeout time.Duration) *OWMClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	settings := gobreaker.Settings{
		Name:    "openweathermap",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("weather: breaker %s %s -> %s", name, from, to)
		},
	}
	return &OWMClient{
		apiKey:  key,
		httpc:   &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Forecast implements ForecastProvider.
func (c *OWMClient) Forecast(ctx context.Context, lat, lon float64, days int) ([]entities.WeatherObservation, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather: missing api key")
	}
	if days <= 0 {
		return nil, fmt.Errorf("weather: forecast horizon %d must be > 0", days)
	}

	var daily []owmDaily
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second

	err := backoff.Retry(func() error {
		out, err := c.breaker.Execute(func() (interface{}, error) {
			return c.fetchDaily(ctx, lat, lon)
		})
		if err != nil {
			if c.breaker.State() == gobreaker.StateOpen {
				return backoff.Permanent(err)
			}
			return err
		}
		daily = out.([]owmDaily)
		return nil
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return nil, fmt.Errorf("weather: forecast fetch failed: %w", err)
	}

	if len(daily) > days {
		daily = daily[:days]
	}
	return buildObservations(daily), nil
}

func (c *OWMClient) fetchDaily(ctx context.Context, lat, lon float64) ([]owmDaily, error) {
	url := fmt.Sprintf(
		"https://api.openweathermap.org/data/3.0/onecall?lat=%f&lon=%f&exclude=current,minutely,hourly,alerts&units=metric&appid=%s",
		lat, lon, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("owm status %d: %s", resp.StatusCode, string(b))
	}
	var out owmResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Daily) == 0 {
		return nil, fmt.Errorf("owm returned no daily data")
	}
	return out.Daily, nil
}
