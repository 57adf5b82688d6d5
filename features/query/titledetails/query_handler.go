package titledetails

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads a title from the inventory.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query. An unknown title is a core.KindNotFound error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (TitleDetails, error) {
	var result TitleDetails

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		title, err := shell.FoundOrNil(uow.Inventory().GetTitle(ctx, query.TitleID))
		if err != nil {
			return err
		}

		if title == nil {
			return core.NewError(core.KindNotFound, "title %d not found", query.TitleID)
		}

		waiting, err := uow.Waitlist().UnresolvedFor(ctx, query.TitleID)
		if err != nil {
			return err
		}

		result = TitleDetails{Title: *title, WaitingMembers: len(waiting)}

		return nil
	})
	if err != nil {
		return TitleDetails{}, core.StorageFailure(err)
	}

	return result, nil
}
