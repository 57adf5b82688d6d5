// Package fixtures seeds a rentalstore.Store with titles, members, and rentals for tests.
package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// Store is the part of rentalstore.Store the fixtures need.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
	View(ctx context.Context, fn rentalstore.TxFunc) error
}

// FixedNow is the reference instant most tests run at.
func FixedNow() time.Time {
	return time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
}

// GivenBook adds a book with the given number of copies, all in stock.
func GivenBook(t testing.TB, store Store, copies int) core.Title {
	t.Helper()

	return givenTitle(t, store, core.NewBook(0, "Frank Herbert", "Dune", copies, core.BookDetails{
		NumberOfPages: 412,
		ISBN:          "978-0441013593",
	}))
}

// GivenDvd adds a dvd with the given number of copies, all in stock.
func GivenDvd(t testing.TB, store Store, copies int) core.Title {
	t.Helper()

	return givenTitle(t, store, core.NewDvd(0, "Denis Villeneuve", "Arrival", copies, core.DvdDetails{
		PublishYear:     2016,
		NumberOfMinutes: 116,
	}))
}

func givenTitle(t testing.TB, store Store, title core.Title) core.Title {
	t.Helper()

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		title, err = uow.Catalog().AddTitle(ctx, title)

		return err
	})
	require.NoError(t, err, "error in arranging test - adding title failed")

	return title
}

// GivenMember registers a member.
func GivenMember(t testing.TB, store Store, lastName string) core.Member {
	t.Helper()

	member := core.Member{
		FirstName:   "Alex",
		LastName:    lastName,
		PersonalID:  "ID-" + lastName,
		DateOfBirth: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		member, err = uow.Catalog().AddMember(ctx, member)

		return err
	})
	require.NoError(t, err, "error in arranging test - adding member failed")

	return member
}

// GivenActiveRental lends one copy of the title to the member, rented at rentedAt.
func GivenActiveRental(t testing.TB, store Store, member core.Member, title core.Title, rentedAt time.Time) core.RentalEntry {
	t.Helper()

	entry := core.BuildTitleRented(member.ID, title.ID, title.Type, rentedAt).ToRentalEntry()

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		if err := uow.Inventory().AdjustCopies(ctx, title.ID, -1); err != nil {
			return err
		}

		var err error
		entry, err = uow.Ledger().Create(ctx, entry)

		return err
	})
	require.NoError(t, err, "error in arranging test - renting title failed")

	return entry
}

// GivenQueuedMember puts the member on the waitlist of the title.
func GivenQueuedMember(t testing.TB, store Store, member core.Member, title core.Title, queuedAt time.Time) core.QueueItem {
	t.Helper()

	item := core.BuildMemberQueuedForTitle(member.ID, title.ID, queuedAt).ToQueueItem()

	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		item, err = uow.Waitlist().Create(ctx, item)

		return err
	})
	require.NoError(t, err, "error in arranging test - queueing member failed")

	return item
}

// ReadTitle loads the current state of a title.
func ReadTitle(t testing.TB, store Store, id core.TitleID) core.Title {
	t.Helper()

	var title core.Title
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		title, err = uow.Inventory().GetTitle(ctx, id)

		return err
	})
	require.NoError(t, err)

	return title
}

// ReadMember loads the current state of a member.
func ReadMember(t testing.TB, store Store, id core.MemberID) core.Member {
	t.Helper()

	var member core.Member
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		member, err = uow.Members().GetMember(ctx, id)

		return err
	})
	require.NoError(t, err)

	return member
}

// ReadEntry loads the current state of a rental entry.
func ReadEntry(t testing.TB, store Store, id core.RentalEntryID) core.RentalEntry {
	t.Helper()

	var entry core.RentalEntry
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		entry, err = uow.Ledger().GetByID(ctx, id)

		return err
	})
	require.NoError(t, err)

	return entry
}

// ReadEntries returns the entries matching the filter.
func ReadEntries(t testing.TB, store Store, filter rentalstore.EntryFilter) []core.RentalEntry {
	t.Helper()

	var entries []core.RentalEntry
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		entries, err = uow.Ledger().Find(ctx, filter)

		return err
	})
	require.NoError(t, err)

	return entries
}

// ReadWaitlist returns the unresolved queue items of a title, oldest first.
func ReadWaitlist(t testing.TB, store Store, titleID core.TitleID) []core.QueueItem {
	t.Helper()

	var items []core.QueueItem
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		items, err = uow.Waitlist().UnresolvedFor(ctx, titleID)

		return err
	})
	require.NoError(t, err)

	return items
}

// ReadOutbox returns up to 100 unpublished outbox records.
func ReadOutbox(t testing.TB, store Store) rentalstore.OutboxRecords {
	t.Helper()

	var records rentalstore.OutboxRecords
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		records, err = uow.Outbox().Unpublished(ctx, 100)

		return err
	})
	require.NoError(t, err)

	return records
}
