package shell

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// Defaults give the attempt schedule 0, 10, 20, 40, 80, 160 ms, each delay stretched by up to 30% jitter.
const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

// Error type labels of RetryMetrics.LastErrorType.
const (
	errorTypeNone                    = "none"
	errorTypeConcurrencyConflict     = "concurrency_conflict"
	errorTypeContextCanceled         = "context_canceled"
	errorTypeContextDeadlineExceeded = "context_deadline_exceeded"
	errorTypeOther                   = "other"
)

var (
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")
	ErrEmptyCommandType    = errors.New("command type must not be empty")
	ErrInvalidMaxAttempts  = errors.New("max attempts must be positive")
	ErrNegativeBaseDelay   = errors.New("base delay must not be negative")
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc is one attempt of a retried operation.
type RetryableFunc func(ctx context.Context) error

// RetryMetrics describes how a retried operation went.
type RetryMetrics struct {
	// Attempts is the number of calls of the RetryableFunc, 1 means no retry happened.
	Attempts int

	// TotalDelay is the time spent sleeping between attempts.
	TotalDelay time.Duration

	// LastErrorType labels the error of the last attempt, "none" on success.
	LastErrorType string

	// RetriesExhausted is true when the last attempt still failed with a conflict.
	RetriesExhausted bool
}

// RetryOption configures RetryWithExponentialBackoff.
type RetryOption func(*backoff) error

type backoff struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
	metrics      Instrumentation
	commandType  string
}

// delay returns the pause before the given attempt, attempt 0 runs immediately.
func (b *backoff) delay(attempt int) time.Duration {
	if attempt == 0 {
		return 0
	}

	base := b.baseDelay << (attempt - 1)
	jitter := rand.Float64() * float64(base) * b.jitterFactor //nolint:gosec // jitter needs no crypto randomness

	return base + time.Duration(jitter)
}

func (b *backoff) labels(extra ...string) map[string]string {
	labels := map[string]string{LogAttrCommandType: b.commandType}
	for i := 0; i+1 < len(extra); i += 2 {
		labels[extra[i]] = extra[i+1]
	}

	return labels
}

// RetryWithExponentialBackoff runs fn until it succeeds, fails with anything but
// rentalstore.ErrConcurrencyConflict, or used up its attempts. A done ctx ends the wait between attempts.
func RetryWithExponentialBackoff(ctx context.Context, fn RetryableFunc, options ...RetryOption) (RetryMetrics, error) {
	b := &backoff{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(b); err != nil {
			return RetryMetrics{LastErrorType: errorTypeOther}, err
		}
	}

	var (
		result RetryMetrics
		err    error
	)

	for attempt := range b.maxAttempts {
		if attempt > 0 {
			pause := b.delay(attempt)
			b.metrics.timing(ctx, CommandHandlerRetryDelayMetric, pause, b.labels(labelAttempt, strconv.Itoa(attempt)))

			if waitErr := sleep(ctx, pause); waitErr != nil {
				result.LastErrorType = errorType(waitErr)
				return result, waitErr
			}

			result.TotalDelay += pause
		}

		result.Attempts++
		err = fn(ctx)
		result.LastErrorType = errorType(err)

		if !errors.Is(err, rentalstore.ErrConcurrencyConflict) {
			return result, err
		}

		if attempt < b.maxAttempts-1 {
			b.metrics.count(ctx, CommandHandlerRetriesMetric,
				b.labels(labelAttempt, strconv.Itoa(attempt+1), labelErrorType, result.LastErrorType))
		}
	}

	result.RetriesExhausted = true
	b.metrics.count(ctx, CommandHandlerMaxRetriesReachedMetric, b.labels(labelFinalError, result.LastErrorType))

	return result, err
}

func sleep(ctx context.Context, pause time.Duration) error {
	timer := time.NewTimer(pause)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func errorType(err error) string {
	switch {
	case err == nil:
		return errorTypeNone
	case errors.Is(err, rentalstore.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return errorTypeContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeContextDeadlineExceeded
	default:
		return errorTypeOther
	}
}

// WithMaxAttempts sets how often fn is called at most, the default is 6.
func WithMaxAttempts(attempts int) RetryOption {
	return func(b *backoff) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		b.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the first pause, every further pause doubles it.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(b *backoff) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		b.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the random stretch of each pause, from 0.0 (none) to 1.0 (up to double).
func WithJitterFactor(factor float64) RetryOption {
	return func(b *backoff) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		b.jitterFactor = factor

		return nil
	}
}

// WithMetrics counts retries, pauses and exhaustion under the given command type.
func WithMetrics(collector MetricsCollector, commandType string) RetryOption {
	return func(b *backoff) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		if commandType == "" {
			return ErrEmptyCommandType
		}

		b.metrics = Instrumentation{Metrics: collector}
		b.commandType = commandType

		return nil
	}
}
