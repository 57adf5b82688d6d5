package queueitemdetails

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads a single waitlist item.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query. An unknown item is a core.KindNotFound error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (QueueItemDetails, error) {
	var result QueueItemDetails

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		item, err := shell.FoundOrNil(uow.Waitlist().GetByID(ctx, query.ItemID))
		if err != nil {
			return err
		}

		if item == nil {
			return core.NewError(core.KindNotFound, "queue item %d not found", query.ItemID)
		}

		result.Item = *item

		return nil
	})
	if err != nil {
		return QueueItemDetails{}, core.StorageFailure(err)
	}

	return result, nil
}
