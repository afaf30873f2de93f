package observability

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/riskibarqy/league-forecast/internal/config"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

const ServiceName = "league-forecast"

// InitTracing installs a global tracer provider that writes spans as JSON to
// cfg.Observability.TraceFile. With no trace file it does nothing.
func InitTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	path := strings.TrimSpace(cfg.Observability.TraceFile)
	if path == "" {
		logger.Debug("tracing disabled", "reason", "observability.trace_file empty")
		return func(context.Context) error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
			attribute.String("league.name", cfg.League.Name),
		)),
	)
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)

	logger.Info("tracing enabled", "trace_file", path)

	return func(ctx context.Context) error {
		otel.SetTracerProvider(previous)
		return errors.Join(provider.Shutdown(ctx), f.Close())
	}, nil
}
