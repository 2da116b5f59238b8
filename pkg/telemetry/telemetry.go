// Package telemetry wires OpenTelemetry tracing to an OTLP/gRPC collector.
// Without an endpoint nothing is installed and the global no-op tracer stays
// in place, so instrumented packages never need to check.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/duration"
)

// Options configures the tracer provider.
type Options struct {
	// Endpoint is the collector address, e.g. "localhost:4317". Empty
	// disables tracing.
	Endpoint string

	// ServiceName defaults to defaults.ToolName.
	ServiceName string

	// Insecure uses a plaintext gRPC connection.
	Insecure bool

	// Headers are sent with every export.
	Headers map[string]string

	// ShutdownTimeout bounds the final flush (default: duration.TelemetryShutdown).
	ShutdownTimeout time.Duration
}

// Provider owns the SDK tracer provider. A disabled Provider is valid.
type Provider struct {
	tp      *sdktrace.TracerProvider
	timeout time.Duration
}

// Setup installs a global tracer provider exporting to opts.Endpoint.
func Setup(ctx context.Context, opts Options) (*Provider, error) {
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = duration.TelemetryShutdown
	}
	if opts.Endpoint == "" {
		return &Provider{timeout: opts.ShutdownTimeout}, nil
	}
	if opts.ServiceName == "" {
		opts.ServiceName = defaults.ToolName
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(opts.Endpoint),
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}
	if len(opts.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithHeaders(opts.Headers))
	}

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(defaults.Version),
		attribute.String("service.component", "cli"),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp, timeout: opts.ShutdownTimeout}, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.tp != nil
}

// Shutdown flushes pending spans. It detaches from ctx cancellation so an
// interrupted command still flushes, bounded by the shutdown timeout.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}
	return nil
}
