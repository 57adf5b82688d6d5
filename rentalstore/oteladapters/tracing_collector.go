package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

const attrStatus = "status"

var (
	_ rentalstore.TracingCollector = (*TracingCollector)(nil)
	_ rentalstore.SpanContext      = (*SpanContext)(nil)
)

// TracingCollector opens one OpenTelemetry span per StartSpan call.
type TracingCollector struct {
	tracer trace.Tracer
}

func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan returns ctx carrying the new span, so nested spans and logs correlate with it.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, rentalstore.SpanContext) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attributesOf(attrs)...))

	return ctx, &SpanContext{span: span}
}

// FinishSpan ends spans started by this collector and ignores any other SpanContext.
func (t *TracingCollector) FinishSpan(spanCtx rentalstore.SpanContext, status string, attrs map[string]string) {
	otelSpan, ok := spanCtx.(*SpanContext)
	if !ok {
		return
	}

	otelSpan.span.SetAttributes(attributesOf(attrs)...)
	otelSpan.SetStatus(status)
	otelSpan.span.End()
}

// SpanContext wraps an OpenTelemetry span.
type SpanContext struct {
	span trace.Span
}

// SetStatus maps the status strings used across the module onto span status codes.
// Unknown strings are kept as a status attribute and leave the code unset.
func (s *SpanContext) SetStatus(status string) {
	switch status {
	case "success", "idempotent", "queued":
		s.span.SetStatus(codes.Ok, "")
	case "error":
		s.span.SetStatus(codes.Error, "operation failed")
	case "canceled", "cancelled":
		s.span.SetStatus(codes.Error, "operation canceled")
	case "timeout":
		s.span.SetStatus(codes.Error, "operation timed out")
	case "conflict":
		s.span.SetStatus(codes.Error, "concurrency conflict")
	default:
		s.span.SetAttributes(attribute.String(attrStatus, status))
	}
}

func (s *SpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}
