// Package tracing installs an OpenTelemetry tracer provider that appends
// finished spans to a JSONL file.
package tracing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config controls how tracing is initialised for the process.
type Config struct {
	// FilePath is where spans are appended, one JSON object per line.
	// Tracing is disabled when it is empty.
	FilePath string
	// ServiceName is recorded on every span.
	ServiceName string
	// ServiceVersion is recorded on every span when set.
	ServiceVersion string
	// SampleRatio controls probabilistic sampling for root spans. Values
	// outside [0,1] are clamped; 0 disables tracing.
	SampleRatio float64
}

// ShutdownFunc flushes pending spans and closes the span file.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup configures the global tracer provider. The returned function must
// be invoked before the process exits so buffered spans reach the file.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	path := strings.TrimSpace(cfg.FilePath)
	ratio := math.Max(0, math.Min(1, cfg.SampleRatio))
	if path == "" || ratio == 0 {
		return noopShutdown, nil
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "devkit"
	}

	exp, err := newFileExporter(path)
	if err != nil {
		return nil, fmt.Errorf("open span file: %w", err)
	}

	attrs := []sdkresource.Option{
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(semconv.ServiceName(serviceName)),
	}
	if v := strings.TrimSpace(cfg.ServiceVersion); v != "" {
		attrs = append(attrs, sdkresource.WithAttributes(semconv.ServiceVersion(v)))
	}
	resource, err := sdkresource.New(ctx, attrs...)
	if err != nil {
		_ = exp.Shutdown(ctx)
		return nil, fmt.Errorf("build trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithBatcher(exp),
	)
	otel.SetTracerProvider(provider)

	return func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return provider.Shutdown(shutdownCtx)
	}, nil
}
