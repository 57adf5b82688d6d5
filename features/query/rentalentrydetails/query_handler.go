package rentalentrydetails

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads a single entry from the ledger.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query. An unknown entry is a core.KindNotFound error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (RentalEntryDetails, error) {
	var result RentalEntryDetails

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		entry, err := shell.FoundOrNil(uow.Ledger().GetByID(ctx, query.EntryID))
		if err != nil {
			return err
		}

		if entry == nil {
			return core.NewError(core.KindNotFound, "rental entry %d not found", query.EntryID)
		}

		result.Entry = *entry

		return nil
	})
	if err != nil {
		return RentalEntryDetails{}, core.StorageFailure(err)
	}

	return result, nil
}
