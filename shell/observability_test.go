package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
	"github.com/AntonStoeckl/library-rentals-go/testutil/spies"
)

func Test_StatusForError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: shell.StatusSuccess},
		{name: "canceled", err: fmt.Errorf("wrapped: %w", context.Canceled), expected: shell.StatusCanceled},
		{name: "timeout", err: context.DeadlineExceeded, expected: shell.StatusTimeout},
		{name: "conflict", err: rentalstore.ErrConcurrencyConflict, expected: shell.StatusConcurrencyConflict},
		{name: "rule violation", err: core.NewError(core.KindNotFound, "member 1 not found"), expected: shell.StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shell.StatusForError(tc.err))
		})
	}
}

func Test_Observation_CountsConflictsSeparately(t *testing.T) {
	// arrange
	metrics := spies.NewMetricsCollectorSpy(true)
	in := shell.Instrumentation{Metrics: metrics}
	ctx, observation := in.ObserveCommand(context.Background(), "RentTitle")

	// act
	observation.Failed(ctx, fmt.Errorf("rent: %w", rentalstore.ErrConcurrencyConflict))

	// assert
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel(shell.LogAttrStatus, shell.StatusConcurrencyConflict).
		Assert())
	assert.True(t, metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithLabel(shell.LogAttrCommandType, "RentTitle").
		Assert())
	assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(shell.CommandHandlerConcurrencyConflictMetric))
}

func Test_Observation_QueryStatusesHaveNoExtraCounters(t *testing.T) {
	// arrange
	metrics := spies.NewMetricsCollectorSpy(true)
	in := shell.Instrumentation{Metrics: metrics}
	ctx, observation := in.ObserveQuery(context.Background(), "PastDueEntries")

	// act
	observation.Failed(ctx, context.Canceled)

	// assert
	assert.True(t, metrics.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
		WithLabel(shell.LogAttrStatus, shell.StatusCanceled).
		Assert())
	assert.Equal(t, 0, metrics.CountCounterRecordsForMetric(shell.CommandHandlerCanceledMetric))
}

func Test_Observation_RuleViolationsAreInfoLevel(t *testing.T) {
	// arrange
	logger, logHandler := spies.NewLogger()
	in := shell.Instrumentation{Logger: logger}
	ctx := context.Background()
	_, violation := in.ObserveCommand(ctx, "RentTitle")
	_, outage := in.ObserveCommand(ctx, "RentTitle")

	// act
	violation.Failed(ctx, core.NewError(core.KindAlreadyRented, "already rented"))
	outage.Failed(ctx, errors.New("db gone"))

	// assert
	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandFailed).
		WithAttribute(shell.LogAttrErrorKind, string(core.KindAlreadyRented)).
		Assert())
	assert.True(t, logHandler.HasErrorLogWithMessage(shell.LogMsgCommandFailed).Assert())
}

func Test_Instrumentation_RecordRetries(t *testing.T) {
	// arrange
	metrics := spies.NewMetricsCollectorSpy(true)
	in := shell.Instrumentation{Metrics: metrics}

	// act
	in.RecordRetries(context.Background(), "ReturnTitle", shell.HandlerResult{
		RetryAttempts:    6,
		TotalRetryDelay:  300 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	})

	// assert
	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("attempt_number", "5").
		WithLabel("error_type", "concurrency_conflict").
		Assert())
	assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(shell.CommandHandlerMaxRetriesReachedMetric))
}
