package unreturnedentries

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads the unreturned entries from the ledger.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (UnreturnedEntries, error) {
	filter := BuildEntryFilter(query)
	result := UnreturnedEntries{MemberID: query.MemberID}

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		result.Entries, err = uow.Ledger().Find(ctx, filter)

		return err
	})
	if err != nil {
		return UnreturnedEntries{}, core.StorageFailure(err)
	}

	result.Count = len(result.Entries)

	return result, nil
}

// BuildEntryFilter translates the query into the ledger filter.
func BuildEntryFilter(query Query) rentalstore.EntryFilter {
	builder := rentalstore.BuildEntryFilter().OnlyUnreturned()
	if query.MemberID > 0 {
		builder = builder.ForAnyMemberOf(query.MemberID)
	}

	return builder.Finalize()
}
