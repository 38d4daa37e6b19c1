package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope every span in this package is
// recorded under.
const TracerName = "github.com/vrpsolver/vrp/pkg/telemetry"

// NewTracerProvider dials collectorAddr over OTLP/gRPC and returns a
// tracer provider plus a shutdown func the caller must defer. An empty
// collectorAddr builds a provider with no exporter registered, so spans
// are created but dropped — useful for running the solver with tracing
// code paths exercised but no collector present.
func NewTracerProvider(ctx context.Context, collectorAddr, runName string) (trace.TracerProvider, func(context.Context) error, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName("vrpsolver"),
		semconv.ServiceInstanceID(runName),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if collectorAddr != "" {
		client := otlptracegrpc.NewClient(otlptracegrpc.WithEndpoint(collectorAddr), otlptracegrpc.WithInsecure())
		exporter, err := otlptrace.New(ctx, client)
		if err != nil {
			return nil, nil, fmt.Errorf("telemetry: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp, tp.Shutdown, nil
}

// Tracer returns the package-scoped tracer from whatever provider is
// currently registered globally (or the no-op provider if none was set).
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartGenerationSpan opens one span covering a full evolution generation.
func StartGenerationSpan(ctx context.Context, gen int) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "generation", trace.WithAttributes(attribute.Int("generation", gen)))
}

// StartInsertionBatchSpan opens one span covering a batch of insertion
// evaluations within a generation (spec.md's insertion evaluator, called
// many times per mutation).
func StartInsertionBatchSpan(ctx context.Context) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "insertion_batch")
}
