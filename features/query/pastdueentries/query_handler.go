package pastdueentries

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads the overdue entries and delegates to Project.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query processing workflow: Find -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (PastDueEntries, error) {
	var entries []core.RentalEntry

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		entries, err = uow.Ledger().Find(ctx, rentalstore.BuildEntryFilter().PastDueAt(query.Now).Finalize())

		return err
	})
	if err != nil {
		return PastDueEntries{}, core.StorageFailure(err)
	}

	return Project(entries, query), nil
}
