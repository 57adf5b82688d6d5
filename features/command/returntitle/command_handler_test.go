package returntitle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/features/command/renttitle"
	"github.com/AntonStoeckl/library-rentals-go/features/command/returntitle"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/memengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/fixtures"
	"github.com/AntonStoeckl/library-rentals-go/testutil/spies"
)

func Test_CommandHandler_RentReturnRoundTripRestoresStock(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	book := fixtures.GivenBook(t, store, 2)
	member := fixtures.GivenMember(t, store, "Noether")

	rented, err := renttitle.NewCommandHandler(store, notifier).
		Handle(ctx, renttitle.BuildCommand(member.ID, book.ID, fixtures.FixedNow()))
	require.NoError(t, err)
	require.Equal(t, 1, fixtures.ReadTitle(t, store, book.ID).AvailableCopies)

	handler := returntitle.NewCommandHandler(store, notifier)

	// act
	result, err := handler.Handle(ctx, returntitle.BuildCommand(rented.Entry.ID, member.ID, book.ID, fixtures.FixedNow()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, returntitle.OutcomeReturned, result.BusinessOutcome)
	assert.True(t, result.Fee.IsZero())
	assert.Equal(t, 2, fixtures.ReadTitle(t, store, book.ID).AvailableCopies)
	assert.True(t, fixtures.ReadEntry(t, store, rented.Entry.ID).IsReturned())
	assert.Equal(t, []string{"Thank you for renting", "Dune was successfully returned"}, notifier.SubjectsFor(member.ID))

	outbox := fixtures.ReadOutbox(t, store)
	require.Len(t, outbox, 1)
	message, err := outbox[0].DecodeTitleReturned()
	require.NoError(t, err)
	assert.Equal(t, book.ID, message.TitleID)
	assert.Equal(t, rented.Entry.ID, message.RentalEntryID)
}

func Test_CommandHandler_LateReturnSendsFeeNotice(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	dayZero := fixtures.FixedNow()
	book := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Noether")
	entry := fixtures.GivenActiveRental(t, store, member, book, dayZero)
	handler := returntitle.NewCommandHandler(store, notifier)

	// act
	result, err := handler.Handle(ctx, returntitle.BuildCommand(entry.ID, member.ID, book.ID, dayZero.Add(25*day)))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Fee.Equal(decimal.RequireFromString("0.40")), "fee was %s", result.Fee)
	assert.Equal(t, []string{"Dune was successfully returned", "Returnal FEE"}, notifier.SubjectsFor(member.ID))
	assert.Contains(t, notifier.Sent()[1].Body, "0.40EUR")
}

func Test_CommandHandler_SecondReturnChangesNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	notifier := spies.NewNotifierSpy()
	book := fixtures.GivenBook(t, store, 3)
	member := fixtures.GivenMember(t, store, "Noether")
	entry := fixtures.GivenActiveRental(t, store, member, book, fixtures.FixedNow())
	handler := returntitle.NewCommandHandler(store, notifier)
	command := returntitle.BuildCommand(entry.ID, member.ID, book.ID, fixtures.FixedNow())

	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyReturned)
	assert.Equal(t, 3, fixtures.ReadTitle(t, store, book.ID).AvailableCopies)
	assert.Len(t, fixtures.ReadOutbox(t, store), 1)
	assert.Len(t, notifier.Sent(), 1)
}

func Test_CommandHandler_DoesNotRestockBeyondTotal(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewStore()
	book := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Noether")

	// an entry whose copy was never taken out of stock
	var entry core.RentalEntry
	err := store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		entry, err = uow.Ledger().Create(ctx, core.BuildTitleRented(member.ID, book.ID, book.Type, fixtures.FixedNow()).ToRentalEntry())

		return err
	})
	require.NoError(t, err)

	handler := returntitle.NewCommandHandler(store, spies.NewNotifierSpy())

	// act
	_, err = handler.Handle(ctx, returntitle.BuildCommand(entry.ID, member.ID, book.ID, fixtures.FixedNow()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, fixtures.ReadTitle(t, store, book.ID).AvailableCopies)
	assert.True(t, fixtures.ReadEntry(t, store, entry.ID).IsReturned())
}

func Test_CommandHandler_StorageFailureRollsBackTheReturn(t *testing.T) {
	// arrange
	ctx := context.Background()
	failure := errors.New("outbox table locked")
	store := memengine.NewStore(memengine.WithFaultInjector(func(operation string) error {
		if operation == memengine.OpAppendOutbox {
			return failure
		}

		return nil
	}))
	notifier := spies.NewNotifierSpy()
	book := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Noether")
	entry := fixtures.GivenActiveRental(t, store, member, book, fixtures.FixedNow())
	handler := returntitle.NewCommandHandler(store, notifier)

	// act
	_, err := handler.Handle(ctx, returntitle.BuildCommand(entry.ID, member.ID, book.ID, fixtures.FixedNow()))

	// assert
	assert.ErrorIs(t, err, core.ErrStorageFailure)
	assert.False(t, fixtures.ReadEntry(t, store, entry.ID).IsReturned())
	assert.Equal(t, 0, fixtures.ReadTitle(t, store, book.ID).AvailableCopies)
	assert.Empty(t, fixtures.ReadOutbox(t, store))
	assert.Empty(t, notifier.Sent())
}

func Test_CommandHandler_RejectsWrongTitle(t *testing.T) {
	// arrange
	store := memengine.NewStore()
	book := fixtures.GivenBook(t, store, 1)
	member := fixtures.GivenMember(t, store, "Noether")
	entry := fixtures.GivenActiveRental(t, store, member, book, fixtures.FixedNow())
	handler := returntitle.NewCommandHandler(store, spies.NewNotifierSpy())

	// act
	_, err := handler.Handle(context.Background(), returntitle.BuildCommand(entry.ID, member.ID, book.ID+1, fixtures.FixedNow()))

	// assert
	assert.ErrorIs(t, err, core.ErrMismatch)
	assert.False(t, fixtures.ReadEntry(t, store, entry.ID).IsReturned())
}
