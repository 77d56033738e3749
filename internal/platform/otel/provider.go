// Package otel configures OpenTelemetry tracing for kafkaview commands.
package otel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/louisbranch/kafkaview/internal/platform/config"
)

// ServiceNamespace groups every kafkaview command in trace backends.
const ServiceNamespace = "kafkaview"

// Settings is the tracing configuration read from the environment.
type Settings struct {
	Endpoint    string  `env:"KAFKAVIEW_OTEL_ENDPOINT"`
	Enabled     string  `env:"KAFKAVIEW_OTEL_ENABLED"`
	SampleRatio float64 `env:"KAFKAVIEW_OTEL_SAMPLE_RATIO" envDefault:"1"`
	BackendURL  string  `env:"KAFKAVIEW_BACKEND_URL"`
}

// LoadSettings reads Settings through lookup; a nil lookup reads the process
// environment.
func LoadSettings(lookup func(string) (string, bool)) (Settings, error) {
	var settings Settings
	if err := config.ParseEnvWithLookup(&settings, lookup); err != nil {
		return Settings{}, err
	}
	if settings.SampleRatio < 0 || settings.SampleRatio > 1 {
		return Settings{}, fmt.Errorf("%s must be within [0, 1], got %v", config.EnvOTelSampleRatio, settings.SampleRatio)
	}
	return settings, nil
}

// Active reports whether an exporter should be installed. An explicit
// "false" wins over a configured endpoint.
func (s Settings) Active() bool {
	if strings.EqualFold(strings.TrimSpace(s.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(s.Endpoint) != ""
}

// Enabled reports whether tracing is configured in the process environment.
func Enabled() bool {
	settings, err := LoadSettings(nil)
	return err == nil && settings.Active()
}

// Setup installs tracing for service from the process environment.
func Setup(ctx context.Context, service string) (func(context.Context) error, error) {
	settings, err := LoadSettings(nil)
	if err != nil {
		return noopShutdown, err
	}
	return SetupWithSettings(ctx, service, settings)
}

// SetupWithSettings installs the W3C trace-context propagator so backend
// calls forward incoming traces, then, when settings are active, a batching
// OTLP/HTTP exporter. Inactive settings leave the global provider untouched
// and return a no-op shutdown.
func SetupWithSettings(ctx context.Context, service string, settings Settings) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	if !settings.Active() {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(settings.Endpoint)))
	if err != nil {
		return noopShutdown, fmt.Errorf("create trace exporter: %w", err)
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceName(ServiceNamespace + "-" + service),
		semconv.ServiceNamespace(ServiceNamespace),
	}
	if backend := strings.TrimSpace(settings.BackendURL); backend != "" {
		attrs = append(attrs, attribute.String("kafkaview.backend_url", backend))
	}
	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return noopShutdown, fmt.Errorf("build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(settings.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func noopShutdown(context.Context) error { return nil }
