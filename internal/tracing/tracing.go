// Package tracing wires OpenTelemetry spans around the pipeline stages.
//
// Spans go to the global tracer provider. Init installs an OTLP/HTTP exporter
// when OTEL_EXPORTER_OTLP_ENDPOINT is set; otherwise the global no-op provider
// stays in place and spans cost nothing.
package tracing

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	EndpointEnv    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	instrumentName = "github.com/dmitrijs2005/garmin2obsidian"
)

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(ctx context.Context) error

// Init installs the exporting tracer provider when an OTLP endpoint is
// configured. The returned ShutdownFunc is never nil.
func Init(ctx context.Context, version string) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	if os.Getenv(EndpointEnv) == "" {
		return noop, nil
	}

	// The exporter reads the remaining OTEL_* variables itself.
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return noop, fmt.Errorf("create OTLP exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			"",
			attribute.String("service.name", common.AppName),
			attribute.String("service.version", version),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Start opens a span named name on the global tracer provider.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End closes span, marking it failed when err is non-nil.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
