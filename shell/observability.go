package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// Metric names follow the OpenTelemetry conventions, durations are in seconds.
const (
	CommandHandlerDurationMetric            = "commandhandler_handle_duration_seconds"
	CommandHandlerCallsMetric               = "commandhandler_handle_calls_total"
	CommandHandlerIdempotentMetric          = "commandhandler_idempotent_operations_total"
	CommandHandlerCanceledMetric            = "commandhandler_canceled_operations_total"
	CommandHandlerTimeoutMetric             = "commandhandler_timeout_operations_total"
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"

	// CommandHandlerRetriesMetric is labeled with command_type, attempt_number and error_type.
	CommandHandlerRetriesMetric           = "commandhandler_retries_total"
	CommandHandlerRetryDelayMetric        = "commandhandler_retry_delay_seconds"
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	QueryHandlerCallsMetric    = "queryhandler_handle_calls_total"

	// NotificationsFailedMetric counts notifications that could not be delivered after a commit.
	NotificationsFailedMetric = "notifications_failed_total"
)

// Status labels of metrics and spans.
const (
	StatusSuccess             = "success"
	StatusError               = "error"
	StatusIdempotent          = "idempotent"
	StatusCanceled            = "canceled"
	StatusTimeout             = "timeout"
	StatusConcurrencyConflict = "concurrency_conflict"
)

const (
	LogMsgCommandStarted     = "command handler started"
	LogMsgCommandCompleted   = "command handler completed"
	LogMsgCommandFailed      = "command handler failed"
	LogMsgQueryStarted       = "query handler started"
	LogMsgQueryCompleted     = "query handler completed"
	LogMsgQueryFailed        = "query handler failed"
	LogMsgNotificationFailed = "notification delivery failed"
)

const (
	LogAttrCommandType = "command_type"
	LogAttrQueryType   = "query_type"
	LogAttrStatus      = "status"
	LogAttrDurationMS  = "duration_ms"

	// LogAttrBusinessOutcome carries what a command did, e.g. "rented" or "queued".
	LogAttrBusinessOutcome = "business_outcome"

	// LogAttrErrorKind carries the core.ErrorKind of a failed operation.
	LogAttrErrorKind = "error_kind"

	LogAttrError    = "error"
	LogAttrMemberID = "member_id"
	LogAttrSubject  = "subject"
)

const (
	labelAttempt    = "attempt_number"
	labelErrorType  = "error_type"
	labelFinalError = "final_error_type"
)

const (
	SpanNameCommandHandle = "commandhandler.handle"
	SpanNameQueryHandle   = "queryhandler.handle"
)

type (
	// MetricsCollector records handler metrics.
	MetricsCollector = rentalstore.MetricsCollector

	// ContextualMetricsCollector is preferred over MetricsCollector when a collector implements it.
	ContextualMetricsCollector = rentalstore.ContextualMetricsCollector

	TracingCollector = rentalstore.TracingCollector
	SpanContext      = rentalstore.SpanContext
	ContextualLogger = rentalstore.ContextualLogger
	Logger           = rentalstore.Logger
)

// StatusForError maps a handler error to the status label of metrics and spans.
func StatusForError(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, rentalstore.ErrConcurrencyConflict):
		return StatusConcurrencyConflict
	default:
		return StatusError
	}
}

// Instrumentation bundles the telemetry sinks of a handler. Any of them may be nil.
// The contextual logger wins over the plain one when both are set.
type Instrumentation struct {
	Metrics    MetricsCollector
	Tracing    TracingCollector
	Logger     Logger
	Contextual ContextualLogger
}

type operation struct {
	typeAttr       string
	spanName       string
	callsMetric    string
	durationMetric string
	started        string
	completed      string
	failed         string
}

var (
	commandOperation = operation{
		typeAttr:       LogAttrCommandType,
		spanName:       SpanNameCommandHandle,
		callsMetric:    CommandHandlerCallsMetric,
		durationMetric: CommandHandlerDurationMetric,
		started:        LogMsgCommandStarted,
		completed:      LogMsgCommandCompleted,
		failed:         LogMsgCommandFailed,
	}

	queryOperation = operation{
		typeAttr:       LogAttrQueryType,
		spanName:       SpanNameQueryHandle,
		callsMetric:    QueryHandlerCallsMetric,
		durationMetric: QueryHandlerDurationMetric,
		started:        LogMsgQueryStarted,
		completed:      LogMsgQueryCompleted,
		failed:         LogMsgQueryFailed,
	}

	// commandStatusCounters are the extra counters a command run increments next to the calls counter.
	commandStatusCounters = map[string]string{
		StatusIdempotent:          CommandHandlerIdempotentMetric,
		StatusCanceled:            CommandHandlerCanceledMetric,
		StatusTimeout:             CommandHandlerTimeoutMetric,
		StatusConcurrencyConflict: CommandHandlerConcurrencyConflictMetric,
	}
)

// Observation is one running command or query, started by ObserveCommand or ObserveQuery.
type Observation struct {
	in      Instrumentation
	op      operation
	name    string
	started time.Time
	span    SpanContext
}

// ObserveCommand opens a span and logs the start of a command of the given type.
func (in Instrumentation) ObserveCommand(ctx context.Context, commandType string) (context.Context, *Observation) {
	return in.observe(ctx, commandOperation, commandType)
}

// ObserveQuery opens a span and logs the start of a query of the given type.
func (in Instrumentation) ObserveQuery(ctx context.Context, queryType string) (context.Context, *Observation) {
	return in.observe(ctx, queryOperation, queryType)
}

func (in Instrumentation) observe(ctx context.Context, op operation, name string) (context.Context, *Observation) {
	o := &Observation{in: in, op: op, name: name, started: time.Now()}

	if in.Tracing != nil {
		ctx, o.span = in.Tracing.StartSpan(ctx, op.spanName, map[string]string{op.typeAttr: name})
	}

	in.log(ctx, slog.LevelInfo, op.started, op.typeAttr, name)

	return ctx, o
}

// Succeeded closes the observation with a success or idempotent status. logArgs are appended to the completion log.
func (o *Observation) Succeeded(ctx context.Context, status string, logArgs ...any) {
	duration := o.finish(ctx, status, nil)

	args := append([]any{o.op.typeAttr, o.name}, logArgs...)
	args = append(args, LogAttrDurationMS, milliseconds(duration))
	o.in.log(ctx, slog.LevelInfo, o.op.completed, args...)
}

// Failed closes the observation with the status StatusForError derives from err.
// Typed business errors are logged at info, everything else at error.
func (o *Observation) Failed(ctx context.Context, err error) {
	o.finish(ctx, StatusForError(err), err)

	args := []any{o.op.typeAttr, o.name, LogAttrError, err.Error()}
	level := slog.LevelError

	if kind, typed := core.KindOf(err); typed {
		args = append(args, LogAttrErrorKind, string(kind))
		if kind != core.KindStorageFailure {
			level = slog.LevelInfo
		}
	}

	o.in.log(ctx, level, o.op.failed, args...)
}

func (o *Observation) finish(ctx context.Context, status string, err error) time.Duration {
	duration := time.Since(o.started)
	labels := map[string]string{o.op.typeAttr: o.name, LogAttrStatus: status}

	o.in.count(ctx, o.op.callsMetric, labels)
	o.in.timing(ctx, o.op.durationMetric, duration, labels)

	if metric, ok := commandStatusCounters[status]; ok && o.op.typeAttr == LogAttrCommandType {
		o.in.count(ctx, metric, labels)
	}

	if o.in.Tracing != nil && o.span != nil {
		attrs := map[string]string{
			LogAttrStatus:     status,
			LogAttrDurationMS: fmt.Sprintf("%.2f", milliseconds(duration)),
		}
		if err != nil {
			attrs[LogAttrError] = err.Error()
		}

		o.in.Tracing.FinishSpan(o.span, status, attrs)
	}

	return duration
}

// RecordRetries turns the retry metadata of a command run into metrics.
func (in Instrumentation) RecordRetries(ctx context.Context, commandType string, meta HandlerResult) {
	if meta.RetryAttempts > 1 {
		in.count(ctx, CommandHandlerRetriesMetric, map[string]string{
			LogAttrCommandType: commandType,
			labelAttempt:       strconv.Itoa(meta.RetryAttempts - 1),
			labelErrorType:     meta.LastErrorType,
		})
		in.timing(ctx, CommandHandlerRetryDelayMetric, meta.TotalRetryDelay, map[string]string{LogAttrCommandType: commandType})
	}

	if meta.RetriesExhausted {
		in.count(ctx, CommandHandlerMaxRetriesReachedMetric, map[string]string{LogAttrCommandType: commandType})
	}
}

func (in Instrumentation) count(ctx context.Context, metric string, labels map[string]string) {
	switch collector := in.Metrics.(type) {
	case nil:
	case ContextualMetricsCollector:
		collector.IncrementCounterContext(ctx, metric, labels)
	default:
		collector.IncrementCounter(metric, labels)
	}
}

func (in Instrumentation) timing(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	switch collector := in.Metrics.(type) {
	case nil:
	case ContextualMetricsCollector:
		collector.RecordDurationContext(ctx, metric, duration, labels)
	default:
		collector.RecordDuration(metric, duration, labels)
	}
}

func (in Instrumentation) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if in.Contextual != nil {
		switch level {
		case slog.LevelWarn:
			in.Contextual.WarnContext(ctx, msg, args...)
		case slog.LevelError:
			in.Contextual.ErrorContext(ctx, msg, args...)
		default:
			in.Contextual.InfoContext(ctx, msg, args...)
		}

		return
	}

	if in.Logger == nil {
		return
	}

	switch level {
	case slog.LevelWarn:
		in.Logger.Warn(msg, args...)
	case slog.LevelError:
		in.Logger.Error(msg, args...)
	default:
		in.Logger.Info(msg, args...)
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
