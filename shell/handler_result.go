package shell

import "time"

// HandlerResult represents the execution metadata of a command handler run.
// Business outcomes (Rented, Queued, fee owed) live in the feature-specific result types that embed it.
type HandlerResult struct {
	// Idempotent indicates the operation needed no state change.
	Idempotent bool

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool

	// BusinessOutcome classifies the result for logs and metrics, e.g. "rented", "queued", "error".
	BusinessOutcome string
}

// Meta returns the result itself, so wrappers can read it from any type embedding HandlerResult.
func (r HandlerResult) Meta() HandlerResult {
	return r
}

// NewSuccessResult creates a HandlerResult for successful operations.
func NewSuccessResult(retryMetrics RetryMetrics, businessOutcome string) HandlerResult {
	return newResult(retryMetrics, businessOutcome, false)
}

// NewIdempotentResult creates a HandlerResult for operations that changed nothing.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(retryMetrics, StatusIdempotent, true)
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the handler returns an error but still wants to report retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(retryMetrics, StatusError, false)
}

func newResult(retryMetrics RetryMetrics, businessOutcome string, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
		BusinessOutcome:  businessOutcome,
	}
}
