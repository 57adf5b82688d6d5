package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine/internal/adapters"
)

const (
	metricTxDuration           = "rentalstore_tx_duration_seconds"
	metricStatementDuration    = "rentalstore_statement_duration_seconds"
	metricConcurrencyConflicts = "rentalstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "rentalstore_database_errors_total"

	spanNameTx = "rentalstore.tx"

	spanAttrOperation   = "operation"
	spanAttrReadOnly    = "read_only"
	spanAttrReplica     = "prefer_replica"
	spanAttrStatements  = "statement_count"
	spanAttrErrorType   = "error_type"
	spanAttrDurationMS  = "duration_ms"
	labelStatus         = "status"
	labelStatement      = "statement"
	labelConflictSource = "conflict_source"

	statusSuccess = "success"
	statusError   = "error"

	logMsgOperation           = "rentalstore operation: "
	logMsgSQLExecuted         = "executed sql for: "
	logMsgTxCommitted         = "transaction committed"
	logMsgTxFailed            = "transaction failed"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgStatementFailed     = "database statement failed"
	logMsgRollbackFailed      = "rolling back transaction failed"
	logMsgCloseRowsFailed     = "failed to close database rows"

	logAttrError      = "error"
	logAttrErrorType  = "error_type"
	logAttrQuery      = "query"
	logAttrOperation  = "operation"
	logAttrDurationMS = "duration_ms"
	logAttrStatements = "statement_count"
)

// txObserver collects the telemetry of one transaction.
type txObserver struct {
	store     *Store
	ctx       context.Context
	operation string
	span      rentalstore.SpanContext
}

func (s *Store) startTxObservation(ctx context.Context, operation string, opts adapters.TxOptions) (*txObserver, context.Context) {
	observer := &txObserver{store: s, ctx: ctx, operation: operation}

	if s.tracingCollector != nil {
		ctx, observer.span = s.tracingCollector.StartSpan(ctx, spanNameTx, map[string]string{
			spanAttrOperation: operation,
			spanAttrReadOnly:  fmt.Sprintf("%t", opts.ReadOnly),
			spanAttrReplica:   fmt.Sprintf("%t", opts.PreferReplica),
		})
		observer.ctx = ctx
	}

	return observer, ctx
}

func (o *txObserver) finishSuccess(statements int, duration time.Duration) {
	o.store.recordDuration(o.ctx, metricTxDuration, duration, map[string]string{
		spanAttrOperation: o.operation,
		labelStatus:       statusSuccess,
	})

	if o.span != nil {
		o.span.AddAttribute(spanAttrStatements, fmt.Sprintf("%d", statements))
		o.span.AddAttribute(spanAttrDurationMS, formatMilliseconds(duration))
		o.store.tracingCollector.FinishSpan(o.span, statusSuccess, nil)
	}

	o.store.logInfo(o.ctx, logMsgOperation+logMsgTxCommitted,
		logAttrOperation, o.operation,
		logAttrStatements, statements,
		logAttrDurationMS, toMilliseconds(duration),
	)
}

func (o *txObserver) finishError(err error, duration time.Duration) {
	errorType := errorTypeOf(err)

	o.store.recordDuration(o.ctx, metricTxDuration, duration, map[string]string{
		spanAttrOperation: o.operation,
		labelStatus:       statusError,
	})

	if errors.Is(err, rentalstore.ErrConcurrencyConflict) {
		o.store.incrementCounter(o.ctx, metricConcurrencyConflicts, map[string]string{
			spanAttrOperation:   o.operation,
			labelConflictSource: conflictSource(err),
		})
		o.store.logInfo(o.ctx, logMsgOperation+logMsgConcurrencyConflict, logAttrOperation, o.operation, logAttrError, err.Error())
	} else if errorType == errorTypeDatabase {
		o.store.incrementCounter(o.ctx, metricDatabaseErrors, map[string]string{
			spanAttrOperation: o.operation,
			spanAttrErrorType: sqlState(err),
		})
	}

	if o.span != nil {
		o.span.AddAttribute(spanAttrErrorType, errorType)
		o.span.AddAttribute(spanAttrDurationMS, formatMilliseconds(duration))
		o.store.tracingCollector.FinishSpan(o.span, statusError, map[string]string{spanAttrErrorType: errorType})
	}

	// Errors returned by the TxFunc itself, e.g. domain decisions, roll back without an error log.
	if errorType == errorTypeDatabase ||
		errors.Is(err, rentalstore.ErrBeginTxFailed) ||
		errors.Is(err, rentalstore.ErrCommitTxFailed) {
		o.store.logError(o.ctx, logMsgTxFailed, logAttrOperation, o.operation, logAttrError, err.Error())
	}
}

// conflictSource tells guarded updates apart from conflicts PostgreSQL detected itself.
func conflictSource(err error) string {
	if code := sqlState(err); code != "" {
		return code
	}

	return "guarded_update"
}

func (s *Store) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(rentalstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

func (s *Store) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(rentalstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logInfo(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Store) logError(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Nanoseconds())/1e6)
}
