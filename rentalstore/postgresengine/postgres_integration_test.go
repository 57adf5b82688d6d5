package postgresengine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/prolongrental"
	"github.com/AntonStoeckl/library-rentals-go/features/command/renttitle"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-rentals-go/testutil/pgtesthelpers"
	"github.com/AntonStoeckl/library-rentals-go/testutil/spies"
)

func Test_Integration_RentalRoundTrip(t *testing.T) {
	// arrange
	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	ctx := context.Background()
	title := fixtures.GivenDvd(t, store, 2)
	member := fixtures.GivenMember(t, store, "Lovelace")

	// act
	entry := fixtures.GivenActiveRental(t, store, member, title, fixtures.FixedNow())

	returnedAt := fixtures.FixedNow().AddDate(0, 0, 3)
	entry.ReturnDate = &returnedAt
	err := store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		if err := uow.Ledger().Update(ctx, entry); err != nil {
			return err
		}

		return uow.Inventory().AdjustCopies(ctx, title.ID, 1)
	})
	require.NoError(t, err)

	// assert
	stored := fixtures.ReadEntry(t, store, entry.ID)
	require.NotNil(t, stored.ReturnDate)
	assert.True(t, returnedAt.Equal(*stored.ReturnDate))
	assert.Equal(t, core.TitleTypeDvd, stored.TitleType)
	assert.Equal(t, 2, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
	assert.Empty(t, fixtures.ReadEntries(t, store, rentalstore.BuildEntryFilter().OnlyUnreturned().Finalize()))
}

func Test_Integration_ProlongRestartsRentalPeriod(t *testing.T) {
	// arrange
	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	title := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Hopper")
	entry := fixtures.GivenActiveRental(t, store, member, title, fixtures.FixedNow())
	prolongedAt := fixtures.FixedNow().AddDate(0, 0, 10)
	handler := prolongrental.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), prolongrental.BuildCommand(entry.ID, member.ID, title.ID, prolongedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, prolongrental.OutcomeProlonged, result.BusinessOutcome)
	stored := fixtures.ReadEntry(t, store, entry.ID)
	assert.Equal(t, 1, stored.TimesProlongued)
	assert.True(t, prolongedAt.Equal(stored.RentedDate), "rented date restarts at the prolong time")
	assert.True(t, core.DueDateFor(core.TitleTypeBook, prolongedAt, 1).Equal(stored.MaxReturnDate))
}

func Test_Integration_UpdatingReturnedEntry_IsConcurrencyConflict(t *testing.T) {
	// arrange
	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	title := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Turing")
	entry := fixtures.GivenActiveRental(t, store, member, title, fixtures.FixedNow())

	returnedAt := fixtures.FixedNow().AddDate(0, 0, 1)
	entry.ReturnDate = &returnedAt
	update := func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Ledger().Update(ctx, entry)
	}
	require.NoError(t, store.WithinTx(context.Background(), update))

	// act
	err := store.WithinTx(context.Background(), update)

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrConcurrencyConflict)
}

func Test_Integration_AdjustCopiesBeyondBounds_IsConcurrencyConflict(t *testing.T) {
	// arrange
	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	title := fixtures.GivenBook(t, store, 1)

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Inventory().AdjustCopies(ctx, title.ID, 1)
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrConcurrencyConflict)
	assert.Equal(t, 1, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
}

func Test_Integration_PastDueFilterAndWaitlistOrder(t *testing.T) {
	// arrange
	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	book := fixtures.GivenBook(t, store, 2)
	early := fixtures.GivenMember(t, store, "Early")
	late := fixtures.GivenMember(t, store, "Late")
	overdue := fixtures.GivenActiveRental(t, store, early, book, fixtures.FixedNow().AddDate(0, 0, -30))
	fixtures.GivenActiveRental(t, store, late, book, fixtures.FixedNow())

	first := fixtures.GivenQueuedMember(t, store, late, book, fixtures.FixedNow().Add(time.Minute))
	second := fixtures.GivenQueuedMember(t, store, early, book, fixtures.FixedNow().Add(2*time.Minute))

	// act
	pastDue := fixtures.ReadEntries(t, store, rentalstore.BuildEntryFilter().OnlyUnreturned().PastDueAt(fixtures.FixedNow()).Finalize())
	waiting := fixtures.ReadWaitlist(t, store, book.ID)

	// assert
	require.Len(t, pastDue, 1)
	assert.Equal(t, overdue.ID, pastDue[0].ID)
	require.Len(t, waiting, 2)
	assert.Equal(t, first.ID, waiting[0].ID)
	assert.Equal(t, second.ID, waiting[1].ID)
}

func Test_Integration_OutboxAppendAndMarkPublished(t *testing.T) {
	// arrange
	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	ctx := context.Background()
	event := core.BuildTitleReturned(core.RentalEntry{ID: 1, MemberID: 2, TitleID: 3, TitleType: core.TitleTypeBook}, fixtures.FixedNow())
	record, err := rentalstore.BuildOutboxRecordFromEvent(event)
	require.NoError(t, err, "error in arranging test - building outbox record failed")

	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Outbox().Append(ctx, record)
	}))

	// act
	pending := fixtures.ReadOutbox(t, store)
	markErr := store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Outbox().MarkPublished(ctx, record.ID)
	})

	// assert
	require.Len(t, pending, 1)
	assert.Equal(t, record.ID, pending[0].ID)
	decoded, err := pending[0].DecodeTitleReturned()
	require.NoError(t, err)
	assert.Equal(t, core.TitleID(3), decoded.TitleID)
	require.NoError(t, markErr)
	assert.Empty(t, fixtures.ReadOutbox(t, store))
}

func Test_Integration_MessagesForMember(t *testing.T) {
	// arrange
	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	ctx := context.Background()
	member := fixtures.GivenMember(t, store, "Hamilton")

	_, err := store.Messages().Save(ctx, core.Message{MemberID: member.ID, Subject: "Returnal FEE", Body: "0.40", SendDate: fixtures.FixedNow()})
	require.NoError(t, err)

	// act
	messages, err := store.Messages().ForMember(ctx, member.ID)

	// assert
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Returnal FEE", messages[0].Subject)
	assert.True(t, fixtures.FixedNow().Equal(messages[0].SendDate))
}

func Test_Integration_ConcurrentRentersNeverOverbook(t *testing.T) {
	// arrange
	const copies = 5
	const renters = 20

	store := pgtesthelpers.CreateWrapperWithTestConfig(t).GetStore()
	title := fixtures.GivenBook(t, store, copies)
	handler := renttitle.NewCommandHandler(store, spies.NewNotifierSpy(), renttitle.WithRetryOptions(
		shell.WithMaxAttempts(12),
		shell.WithBaseDelay(2*time.Millisecond),
	))

	members := make([]core.Member, renters)
	for i := range members {
		members[i] = fixtures.GivenMember(t, store, "Renter")
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	counts := map[string]int{}

	// act
	for _, member := range members {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := handler.Handle(context.Background(), renttitle.BuildCommand(member.ID, title.ID, fixtures.FixedNow()))
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			counts[result.Outcome]++
			mu.Unlock()
		}()
	}

	wg.Wait()

	// assert
	assert.Equal(t, copies, counts[renttitle.OutcomeRented])
	assert.Equal(t, renters-copies, counts[renttitle.OutcomeQueued])
	assert.Equal(t, 0, fixtures.ReadTitle(t, store, title.ID).AvailableCopies)
}
