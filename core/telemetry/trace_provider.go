package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// CollectorEndpoint locates an OTLP/HTTP collector.
type CollectorEndpoint struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	// CACertsBase64 enables TLS with the given base64 encoded PEM certificates.
	CACertsBase64 string `json:"caCerts" yaml:"caCerts"`
}

// InstallTraceProvider installs the global trace provider based on http otlp exporter.
// Without an endpoint a noop provider is installed. The returned function flushes and
// stops the provider.
func InstallTraceProvider(
	settings *CollectorEndpoint,
	serviceName string,
) (func(context.Context) error, error) {
	var tracerProvider trace.TracerProvider
	shutdown := func(context.Context) error { return nil }

	defer func() {
		if tracerProvider != nil {
			otel.SetTracerProvider(tracerProvider)
		}
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}()

	if settings == nil || len(settings.Endpoint) == 0 {
		tracerProvider = trace.NewNoopTracerProvider()
		return shutdown, nil
	}

	tlsConfig, err := settings.TLSConfig()
	if err != nil {
		return shutdown, err
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(settings.Endpoint)}
	if tlsConfig != nil {
		opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
	} else {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
	if err != nil {
		return shutdown, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName)))
	if err != nil {
		return shutdown, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r))
	tracerProvider = provider

	return provider.Shutdown, nil
}
