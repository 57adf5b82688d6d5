package observable

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// CommandWrapper adds metrics, tracing, and logging to a core command handler.
// Business logic and retries stay in the wrapped handler, the wrapper translates its HandlerResult into telemetry.
type CommandWrapper[C shell.Command, R shell.ExposesHandlerResult] struct {
	coreHandler shell.CoreCommandHandler[C, R]
	commandType string
	telemetry   shell.Instrumentation
}

// CommandOption configures a CommandWrapper.
type CommandOption[C shell.Command, R shell.ExposesHandlerResult] func(*CommandWrapper[C, R]) error

// NewCommandWrapper wraps coreHandler, the command type is taken from the zero value of C.
func NewCommandWrapper[C shell.Command, R shell.ExposesHandlerResult](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {
	var zero C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zero.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the core handler and records the outcome.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	ctx, observation := w.telemetry.ObserveCommand(ctx, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)
	meta := result.Meta()
	w.telemetry.RecordRetries(ctx, w.commandType, meta)

	if err != nil {
		observation.Failed(ctx, err)
		return result, err
	}

	status := shell.StatusSuccess
	if meta.Idempotent {
		status = shell.StatusIdempotent
	}

	outcome := meta.BusinessOutcome
	if outcome == "" {
		outcome = status
	}

	observation.Succeeded(ctx, status, shell.LogAttrBusinessOutcome, outcome)

	return result, nil
}

func WithCommandMetrics[C shell.Command, R shell.ExposesHandlerResult](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.telemetry.Metrics = collector
		return nil
	}
}

func WithCommandTracing[C shell.Command, R shell.ExposesHandlerResult](collector shell.TracingCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.telemetry.Tracing = collector
		return nil
	}
}

// WithCommandContextualLogging sets a context-aware logger, it takes precedence over WithCommandLogging.
func WithCommandContextualLogging[C shell.Command, R shell.ExposesHandlerResult](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.telemetry.Contextual = logger
		return nil
	}
}

func WithCommandLogging[C shell.Command, R shell.ExposesHandlerResult](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.telemetry.Logger = logger
		return nil
	}
}
