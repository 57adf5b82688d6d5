package observable

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryWrapper adds metrics, tracing, and logging to a core query handler.
type QueryWrapper[Q shell.Query, R any] struct {
	coreHandler shell.CoreQueryHandler[Q, R]
	queryType   string
	telemetry   shell.Instrumentation
}

// QueryOption configures a QueryWrapper.
type QueryOption[Q shell.Query, R any] func(*QueryWrapper[Q, R])

func WithQueryMetrics[Q shell.Query, R any](collector shell.MetricsCollector) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) { w.telemetry.Metrics = collector }
}

func WithQueryTracing[Q shell.Query, R any](collector shell.TracingCollector) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) { w.telemetry.Tracing = collector }
}

func WithQueryContextualLogging[Q shell.Query, R any](logger shell.ContextualLogger) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) { w.telemetry.Contextual = logger }
}

func WithQueryLogging[Q shell.Query, R any](logger shell.Logger) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) { w.telemetry.Logger = logger }
}

// NewQueryWrapper wraps coreHandler, the query type is taken from the zero value of Q.
func NewQueryWrapper[Q shell.Query, R any](coreHandler shell.CoreQueryHandler[Q, R], opts ...QueryOption[Q, R]) *QueryWrapper[Q, R] {
	var zero Q

	wrapper := &QueryWrapper[Q, R]{
		coreHandler: coreHandler,
		queryType:   zero.QueryType(),
	}

	for _, opt := range opts {
		opt(wrapper)
	}

	return wrapper
}

// Handle delegates to the core handler and records the outcome.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	ctx, observation := w.telemetry.ObserveQuery(ctx, w.queryType)

	result, err := w.coreHandler.Handle(ctx, query)
	if err != nil {
		observation.Failed(ctx, err)
		return result, err
	}

	observation.Succeeded(ctx, shell.StatusSuccess)

	return result, nil
}
