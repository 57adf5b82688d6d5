package shell

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// LoadEntryAccess reads the addressed entry and whether the member exists.
// A missing entry is reported as a nil Entry, and the member is then not looked up.
func LoadEntryAccess(
	ctx context.Context,
	uow rentalstore.UnitOfWork,
	entryID core.RentalEntryID,
	memberID core.MemberID,
	titleID core.TitleID,
) (core.EntryAccess, error) {

	access := core.EntryAccess{EntryID: entryID, MemberID: memberID, TitleID: titleID}

	entry, err := FoundOrNil(uow.Ledger().GetByID(ctx, entryID))
	if err != nil {
		return core.EntryAccess{}, err
	}

	access.Entry = entry
	if entry == nil {
		return access, nil
	}

	access.MemberExists, err = uow.Members().Exists(ctx, memberID)
	if err != nil {
		return core.EntryAccess{}, err
	}

	return access, nil
}
