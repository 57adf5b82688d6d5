package renttitle_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/renttitle"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/shell"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-rentals-go/testutil/spies"
)

func Test_CommandHandler_RentsCopyAndNotifiesMember(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	title := fixtures.GivenBook(t, store, 2)
	member := fixtures.GivenMember(t, store, "Hopper")
	handler := renttitle.NewCommandHandler(store, notifier)

	// act
	result, err := handler.Handle(ctx, renttitle.BuildCommand(member.ID, title.ID, fixtures.FixedNow()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, renttitle.OutcomeRented, result.Outcome)
	assert.Equal(t, renttitle.OutcomeRented, result.BusinessOutcome)
	assert.Equal(t, 1, result.RetryAttempts)
	require.NotNil(t, result.Entry)
	assert.Nil(t, result.QueueItem)

	entry := fixtures.ReadEntry(t, store, result.Entry.ID)
	assert.Equal(t, member.ID, entry.MemberID)
	assert.Equal(t, title.ID, entry.TitleID)
	assert.False(t, entry.IsReturned())
	assert.Equal(t, 1, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
	assert.Equal(t, []string{"Thank you for renting"}, notifier.SubjectsFor(member.ID))
}

func Test_CommandHandler_QueuesMemberWhenNoCopyLeft(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	title := fixtures.GivenDvd(t, store, 1)
	first := fixtures.GivenMember(t, store, "Hopper")
	second := fixtures.GivenMember(t, store, "Hamilton")
	handler := renttitle.NewCommandHandler(store, notifier)

	_, err := handler.Handle(ctx, renttitle.BuildCommand(first.ID, title.ID, fixtures.FixedNow()))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, renttitle.BuildCommand(second.ID, title.ID, fixtures.FixedNow()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.IsQueued())
	require.NotNil(t, result.QueueItem)
	assert.Nil(t, result.Entry)

	waitlist := fixtures.ReadWaitlist(t, store, title.ID)
	require.Len(t, waitlist, 1)
	assert.Equal(t, second.ID, waitlist[0].MemberID)
	assert.Equal(t, 0, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
	assert.Equal(t, []string{"You were added to Queue"}, notifier.SubjectsFor(second.ID))
}

func Test_CommandHandler_RejectsThirdRental(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	member := fixtures.GivenMember(t, store, "Hopper")
	handler := renttitle.NewCommandHandler(store, notifier)

	for range core.MaxActiveRentalsPerMember {
		title := fixtures.GivenBook(t, store, 1)
		_, err := handler.Handle(ctx, renttitle.BuildCommand(member.ID, title.ID, fixtures.FixedNow()))
		require.NoError(t, err)
	}

	third := fixtures.GivenBook(t, store, 1)

	// act
	result, err := handler.Handle(ctx, renttitle.BuildCommand(member.ID, third.ID, fixtures.FixedNow()))

	// assert
	assert.ErrorIs(t, err, core.ErrMemberRentalLimitReached)
	assert.Equal(t, shell.StatusError, result.BusinessOutcome)
	assert.Equal(t, 1, fixtures.ReadTitle(t, store, third.ID).AvailableCopies)
	assert.Len(t, notifier.SubjectsFor(member.ID), core.MaxActiveRentalsPerMember)
}

func Test_CommandHandler_RejectsUnknownMember(t *testing.T) {
	// arrange
	store := memengine.NewStore()
	title := fixtures.GivenBook(t, store, 1)
	handler := renttitle.NewCommandHandler(store, spies.NewNotifierSpy())

	// act
	_, err := handler.Handle(context.Background(), renttitle.BuildCommand(999, title.ID, fixtures.FixedNow()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 1, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
}

func Test_CommandHandler_StorageFailureLeavesNothingBehind(t *testing.T) {
	// arrange
	ctx := context.Background()
	failure := errors.New("disk full")
	store := memengine.NewStore(memengine.WithFaultInjector(func(operation string) error {
		if operation == memengine.OpCreateEntry {
			return failure
		}

		return nil
	}))
	notifier := spies.NewNotifierSpy()
	title := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Hopper")
	handler := renttitle.NewCommandHandler(store, notifier)

	// act
	_, err := handler.Handle(ctx, renttitle.BuildCommand(member.ID, title.ID, fixtures.FixedNow()))

	// assert
	assert.ErrorIs(t, err, core.ErrStorageFailure)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 1, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
	assert.Empty(t, fixtures.ReadEntries(t, store, rentalstore.BuildEntryFilter().MatchingAnyEntry()))
	assert.Empty(t, notifier.Sent())
}

func Test_CommandHandler_FailedNotificationKeepsTheRental(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	notifier.FailWith(errors.New("smtp down"))
	logger, logSpy := spies.NewLogger()
	metrics := spies.NewMetricsCollectorSpy(true)
	title := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Hopper")
	handler := renttitle.NewCommandHandler(store, notifier, renttitle.WithLogger(logger), renttitle.WithMetrics(metrics))

	// act
	result, err := handler.Handle(ctx, renttitle.BuildCommand(member.ID, title.ID, fixtures.FixedNow()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, renttitle.OutcomeRented, result.Outcome)
	assert.Equal(t, 0, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
	assert.True(t, logSpy.HasWarnLogWithMessage(shell.LogMsgNotificationFailed).Assert())
	assert.Equal(t, 1, metrics.CountCounterRecordsForMetric(shell.NotificationsFailedMetric))
}

func Test_CommandHandler_ConcurrentRentersNeverOverbook(t *testing.T) {
	// arrange
	const copies = 10
	const renters = 100

	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	title := fixtures.GivenBook(t, store, copies)
	handler := renttitle.NewCommandHandler(store, notifier)

	members := make([]core.Member, renters)
	for i := range members {
		members[i] = fixtures.GivenMember(t, store, "Renter")
	}

	var wg sync.WaitGroup
	outcomes := make(chan string, renters)
	failures := make(chan error, renters)

	// act
	for _, member := range members {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := handler.Handle(ctx, renttitle.BuildCommand(member.ID, title.ID, fixtures.FixedNow()))
			if err != nil {
				failures <- err
				return
			}

			outcomes <- result.Outcome
		}()
	}

	wg.Wait()
	close(outcomes)
	close(failures)

	// assert
	for err := range failures {
		t.Errorf("unexpected error: %v", err)
	}

	counts := map[string]int{}
	for outcome := range outcomes {
		counts[outcome]++
	}

	assert.Equal(t, copies, counts[renttitle.OutcomeRented])
	assert.Equal(t, renters-copies, counts[renttitle.OutcomeQueued])
	assert.Equal(t, 0, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
	assert.Len(t, fixtures.ReadWaitlist(t, store, title.ID), renters-copies)
	assert.Len(t, notifier.Sent(), renters)
}

func Test_CommandHandler_CanceledContext(t *testing.T) {
	// arrange
	store := memengine.NewStore()
	title := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Hopper")
	handler := renttitle.NewCommandHandler(store, spies.NewNotifierSpy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := handler.Handle(ctx, renttitle.BuildCommand(member.ID, title.ID, fixtures.FixedNow()))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
}
