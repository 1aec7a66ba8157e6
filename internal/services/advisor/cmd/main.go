package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agrosphere/smartfarm/internal/services/advisor"
	"github.com/agrosphere/smartfarm/internal/services/scheduler"
	"github.com/agrosphere/smartfarm/internal/services/weather"
	"github.com/agrosphere/smartfarm/pkg/mqttbus"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MQTT
	cfg := &mqttbus.Config{
		Host:     env("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     env("MQTT_USER", "guest"),
		Password: env("MQTT_PASSWORD", "guest"),
		ClientID: fmt.Sprintf("IrrigationAdvisor-%s", env("HOSTNAME", "local")),
	}
	mqClient, err := mqttbus.NewConn(cfg, ctx)
	if err != nil {
		log.Fatalf("MQTT connect failed: %v", err)
	}

	aggregatedSub := env("AGGREGATED_SUB_TOPIC", "sensor/aggregated/#")
	consumer := mqttbus.NewConsumer(mqClient, aggregatedSub, nil)
	publisher := mqttbus.NewPublisher(mqClient)

	// Weather provider
	owmKey := env("OWM_API_KEY", "")
	wc := weather.NewOWMClient(owmKey, time.Duration(envInt("WEATHER_TIMEOUT_MS", 5000))*time.Millisecond)

	// Engine with the calibrated default tables
	engine := scheduler.NewEngine(nil, nil)

	fieldsPath := env("FIELDS_CONFIG_PATH", "/app/config/fields-config.json")
	decisionTopicTmpl := env("DECISION_TOPIC_TMPL", "event/irrigationDecision/{field}")
	metrics := advisor.NewMetrics(prometheus.DefaultRegisterer)

	svc, err := advisor.NewService(engine, consumer, publisher, wc, fieldsPath, decisionTopicTmpl, metrics)
	if err != nil {
		log.Fatalf("advisor init: %v", err)
	}

	// HTTP
	port := env("PORT", "8080")
	hs := &http.Server{
		Addr:              ":" + port,
		Handler:           svc.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("advisor: HTTP listening on :%s", port)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	go svc.Start(ctx)
	log.Printf("IrrigationAdvisor running. sub=%s fields=%s", aggregatedSub, fieldsPath)

	// graceful shutdown
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	<-sigc
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = hs.Shutdown(shCtx)
	mqttbus.CloseConn(mqClient)
}
