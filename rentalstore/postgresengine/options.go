package postgresengine

import (
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// Logger is the basic logger for SQL debugging and operational messages.
type Logger = rentalstore.Logger

// ContextualLogger is the context-aware logger, preferred over Logger when both are set.
type ContextualLogger = rentalstore.ContextualLogger

// MetricsCollector receives transaction durations, conflicts, and database errors.
type MetricsCollector = rentalstore.MetricsCollector

// TracingCollector receives one span per transaction.
type TracingCollector = rentalstore.TracingCollector

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: transaction outcomes and concurrency conflicts (production-safe)
// Warn level: failed rollbacks
// Error level: failed statements and commits.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
func WithTracing(collector TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
