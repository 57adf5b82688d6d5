package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

const (
	statementFindEntries = "find_entries"
	statementGetEntry    = "get_entry"
	statementCreateEntry = "create_entry"
	statementUpdateEntry = "update_entry"
	statementEntryExists = "entry_exists"
)

type ledger struct{ u *unitOfWork }

func (l ledger) ActiveEntriesFor(ctx context.Context, memberID core.MemberID) ([]core.RentalEntry, error) {
	return l.Find(ctx, rentalstore.BuildEntryFilter().ForAnyMemberOf(memberID).OnlyUnreturned().Finalize())
}

func (l ledger) GetByID(ctx context.Context, id core.RentalEntryID) (core.RentalEntry, error) {
	rows, err := l.u.query(ctx, statementGetEntry,
		dialect.From(tableRentalEntries).Select(entryColumns...).Where(goqu.C(colID).Eq(id)),
	)
	if err != nil {
		return core.RentalEntry{}, err
	}

	return single(ctx, l.u, rows, scanEntry)
}

// Create relies on the partial unique index over active (member_id, title_id) pairs.
// A concurrent duplicate rental surfaces as rentalstore.ErrConcurrencyConflict.
func (l ledger) Create(ctx context.Context, entry core.RentalEntry) (core.RentalEntry, error) {
	rows, err := l.u.query(ctx, statementCreateEntry,
		dialect.Insert(tableRentalEntries).Rows(goqu.Record{
			colMemberID:        entry.MemberID,
			colTitleID:         entry.TitleID,
			colTitleType:       string(entry.TitleType),
			colRentedDate:      entry.RentedDate,
			colMaxReturnDate:   entry.MaxReturnDate,
			colReturnDate:      nullableTime(entry.ReturnDate),
			colTimesProlongued: entry.TimesProlongued,
		}).Returning(colID),
	)
	if err != nil {
		return core.RentalEntry{}, err
	}

	id, err := single(ctx, l.u, rows, scanID)
	if err != nil {
		return core.RentalEntry{}, err
	}

	entry.ID = id

	return entry, nil
}

func (l ledger) Update(ctx context.Context, entry core.RentalEntry) error {
	rowsAffected, err := l.u.exec(ctx, statementUpdateEntry,
		dialect.Update(tableRentalEntries).
			Set(goqu.Record{
				colRentedDate:      entry.RentedDate,
				colMaxReturnDate:   entry.MaxReturnDate,
				colReturnDate:      nullableTime(entry.ReturnDate),
				colTimesProlongued: entry.TimesProlongued,
			}).
			Where(goqu.C(colID).Eq(entry.ID), goqu.C(colReturnDate).IsNull()),
	)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return l.u.missingOrConflict(ctx, statementEntryExists, tableRentalEntries, entry.ID)
	}

	return nil
}

func (l ledger) Find(ctx context.Context, filter rentalstore.EntryFilter) ([]core.RentalEntry, error) {
	query := dialect.From(tableRentalEntries).Select(entryColumns...).Order(goqu.C(colID).Asc())

	if memberIDs := filter.MemberIDs(); len(memberIDs) > 0 {
		query = query.Where(goqu.C(colMemberID).In(memberIDs))
	}

	if titleIDs := filter.TitleIDs(); len(titleIDs) > 0 {
		query = query.Where(goqu.C(colTitleID).In(titleIDs))
	}

	if filter.OnlyUnreturned() {
		query = query.Where(goqu.C(colReturnDate).IsNull())
	}

	if dueBefore, ok := filter.DueBefore(); ok {
		query = query.Where(goqu.C(colMaxReturnDate).Lt(dueBefore))
	}

	rows, err := l.u.query(ctx, statementFindEntries, query)
	if err != nil {
		return nil, err
	}

	return collect(ctx, l.u, rows, scanEntry)
}
