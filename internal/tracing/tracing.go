// Package tracing wires optional OpenTelemetry spans around a
// simulation tick. Tracing is purely additive: it never changes the
// numeric behavior of a tick, only observes its wall-clock shape.
package tracing

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/onnwee/forcelayout/internal/utils"
)

var tracer trace.Tracer

// Init configures the OTLP/HTTP exporter for the given service name.
// Tracing stays disabled (Init returns a no-op shutdown) unless
// FORCELAYOUT_TRACING=true.
func Init(serviceName string) (func(context.Context) error, error) {
	if os.Getenv("FORCELAYOUT_TRACING") != "true" {
		return func(context.Context) error { return nil }, nil
	}

	ctx := context.Background()

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(getVersion()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	samplingRate := utils.GetEnvAsFloat("OTEL_TRACE_SAMPLE_RATE", 0.1)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(samplingRate)),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(serviceName)

	shutdownSeconds := utils.GetEnvAsInt("FORCELAYOUT_TRACING_SHUTDOWN_SECONDS", 5)
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, time.Duration(shutdownSeconds)*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

func getVersion() string {
	if v := os.Getenv("SERVICE_VERSION"); v != "" {
		return v
	}
	return "dev"
}

// GetTracer returns the configured tracer, or a no-op tracer if Init
// was never called or tracing is disabled.
func GetTracer() trace.Tracer {
	if tracer == nil {
		return otel.Tracer("noop")
	}
	return tracer
}

// StartSpan starts a span under the configured tracer.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, spanName, opts...)
}

// StartTickSpan starts the span around a batch of simulation ticks,
// pre-populated with the attributes every tick trace needs: how many
// steps it covers, the cooling factor at the start of the batch, and
// the particle count the forces ran over. Callers add span events or
// extra attributes of their own on top; they never need to repeat
// these three.
func StartTickSpan(ctx context.Context, steps int, alpha float64, particleCount int) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, "forcelayout.tick")
	span.SetAttributes(
		attribute.Int("forcelayout.tick.steps", steps),
		attribute.Float64("forcelayout.tick.alpha", alpha),
		attribute.Int("forcelayout.tick.particle_count", particleCount),
	)
	return ctx, span
}
