package memberentries

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads the entries of a member from the ledger.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query. An unknown member is a core.KindNotFound error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberEntries, error) {
	result := MemberEntries{MemberID: query.MemberID}

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		exists, err := uow.Members().Exists(ctx, query.MemberID)
		if err != nil {
			return err
		}

		if !exists {
			return core.NewError(core.KindNotFound, "member %d not found", query.MemberID)
		}

		result.Entries, err = uow.Ledger().Find(ctx, rentalstore.BuildEntryFilter().ForAnyMemberOf(query.MemberID).Finalize())

		return err
	})
	if err != nil {
		return MemberEntries{}, core.StorageFailure(err)
	}

	for _, entry := range result.Entries {
		if !entry.IsReturned() {
			result.ActiveCount++
		}
	}

	result.Count = len(result.Entries)

	return result, nil
}
