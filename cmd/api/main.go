package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "memoapp/internal/adapter/http"
	. "memoapp/pkg/config"
	. "memoapp/pkg/tracing"
)

func main() {
	ctx := context.Background()

	lokiURL := os.Getenv("LOKI_URL")

	if lokiURL == "" {
		lokiURL = "http://localhost:3100"
	}

	logger, err := NewLokiLogger("memoapp", lokiURL)

	if err != nil {
		log.Fatal("Failed to initialize Loki logger:", err)
	}

	defer logger.Sync()

	otlpEndpoint := os.Getenv("OTLP_ENDPOINT")

	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	telemetry, err := InitTelemetry(TelemetryConfig{
		ServiceName:    "memoapp",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   otlpEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(ctx)

	metrics := NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		api.StartServerWithConfig(metrics, logger, Load())
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
