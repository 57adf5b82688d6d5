package oteladapters

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const attrServiceName = "service.name"

// Providers owns the SDK tracer and meter providers of a process.
type Providers struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

type providerConfig struct {
	spanProcessors []sdktrace.SpanProcessor
	metricReaders  []sdkmetric.Reader
	setGlobal      bool
}

// ProviderOption configures NewProviders.
type ProviderOption func(*providerConfig)

// WithSpanProcessor registers a span processor, e.g. a batcher around an exporter.
func WithSpanProcessor(processor sdktrace.SpanProcessor) ProviderOption {
	return func(c *providerConfig) {
		c.spanProcessors = append(c.spanProcessors, processor)
	}
}

// WithMetricReader registers a metric reader.
func WithMetricReader(reader sdkmetric.Reader) ProviderOption {
	return func(c *providerConfig) {
		c.metricReaders = append(c.metricReaders, reader)
	}
}

// WithoutGlobalRegistration keeps the otel globals untouched.
func WithoutGlobalRegistration() ProviderOption {
	return func(c *providerConfig) {
		c.setGlobal = false
	}
}

// NewProviders builds tracer and meter providers for serviceName and, by default, installs them
// together with a W3C trace context propagator as the otel globals.
func NewProviders(serviceName string, opts ...ProviderOption) (*Providers, error) {
	cfg := &providerConfig{setGlobal: true}
	for _, opt := range opts {
		opt(cfg)
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(attribute.String(attrServiceName, serviceName)))
	if err != nil {
		return nil, err
	}

	traceOptions := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	for _, processor := range cfg.spanProcessors {
		traceOptions = append(traceOptions, sdktrace.WithSpanProcessor(processor))
	}

	metricOptions := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, reader := range cfg.metricReaders {
		metricOptions = append(metricOptions, sdkmetric.WithReader(reader))
	}

	providers := &Providers{
		tracerProvider: sdktrace.NewTracerProvider(traceOptions...),
		meterProvider:  sdkmetric.NewMeterProvider(metricOptions...),
	}

	if cfg.setGlobal {
		otel.SetTracerProvider(providers.tracerProvider)
		otel.SetMeterProvider(providers.meterProvider)
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	return providers, nil
}

func (p *Providers) Tracer(name string) trace.Tracer {
	return p.tracerProvider.Tracer(name)
}

func (p *Providers) Meter(name string) metric.Meter {
	return p.meterProvider.Meter(name)
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(p.tracerProvider.Shutdown(ctx), p.meterProvider.Shutdown(ctx))
}
