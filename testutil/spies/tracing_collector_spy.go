package spies

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// recordedSpan is the rentalstore.SpanContext the spy hands out.
type recordedSpan struct {
	name       string
	attributes map[string]string
	status     string
	finished   bool
}

func (s *recordedSpan) SetStatus(status string)        { s.status = status }
func (s *recordedSpan) AddAttribute(key, value string) { s.attributes[key] = value }

// TracingCollectorSpy records started and finished spans.
type TracingCollectorSpy struct {
	mu          sync.Mutex
	spans       []*recordedSpan
	recordCalls bool
}

func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{recordCalls: recordCalls}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, rentalstore.SpanContext) {
	if !s.recordCalls {
		return ctx, nil
	}

	span := &recordedSpan{name: name, attributes: maps.Clone(attrs)}
	if span.attributes == nil {
		span.attributes = map[string]string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = append(s.spans, span)

	return ctx, span
}

// FinishSpan ignores spans it did not start.
func (s *TracingCollectorSpy) FinishSpan(spanCtx rentalstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*recordedSpan)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	span.status = status
	span.finished = true
	maps.Copy(span.attributes, attrs)
}

// HasSpanWithStatus reports whether a span with the given name finished with status.
func (s *TracingCollectorSpy) HasSpanWithStatus(name, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, span := range s.spans {
		if span.finished && span.name == name && span.status == status {
			return true
		}
	}

	return false
}
