// Package tracing configures the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const defaultEndpoint = "http://localhost:14268/api/traces"

// Config controls span export.
type Config struct {
	Enabled     bool    `env:"TRACING_ENABLED" envDefault:"false"`
	ServiceName string  `env:"TRACING_SERVICE_NAME" envDefault:"fare-quotation-service"`
	Endpoint    string  `env:"JAEGER_ENDPOINT" envDefault:"http://localhost:14268/api/traces"`
	SampleRatio float64 `env:"TRACING_SAMPLE_RATIO" envDefault:"1"`
}

// ShutdownFunc flushes and stops the exporter.
type ShutdownFunc func(ctx context.Context) error

// Init installs the W3C propagators and, when enabled, a Jaeger-exporting
// tracer provider. With tracing disabled spans are created by the default
// no-op provider and the returned shutdown does nothing.
func Init(cfg Config) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(cfg.ServiceName, cfg.Endpoint, cfg.SampleRatio)
	if err != nil {
		return nil, err
	}
	return tp.Shutdown, nil
}

// InitTracer builds a tracer provider exporting to the Jaeger collector and
// registers it globally.
func InitTracer(serviceName, collector string, sampleRatio float64) (*tracesdk.TracerProvider, error) {
	endpoint := normalizeJaegerCollector(collector)

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(endpoint),
	))
	if err != nil {
		return nil, fmt.Errorf("create jaeger exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithSampler(sampler(sampleRatio)),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

func sampler(ratio float64) tracesdk.Sampler {
	switch {
	case ratio >= 1:
		return tracesdk.ParentBased(tracesdk.AlwaysSample())
	case ratio <= 0:
		return tracesdk.ParentBased(tracesdk.NeverSample())
	default:
		return tracesdk.ParentBased(tracesdk.TraceIDRatioBased(ratio))
	}
}

func normalizeJaegerCollector(value string) string {
	endpoint := strings.TrimSpace(value)
	if endpoint == "" {
		return defaultEndpoint
	}

	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	if strings.HasSuffix(endpoint, "/api/traces") {
		return endpoint
	}

	return fmt.Sprintf("%s/api/traces", strings.TrimSuffix(endpoint, "/"))
}
