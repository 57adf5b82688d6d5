package titles

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads titles from the inventory.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query. An unknown title type is a core.KindNotFound error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Titles, error) {
	if query.TitleType != "" && !query.TitleType.Valid() {
		return Titles{}, core.NewError(core.KindNotFound, "title type %q not found", query.TitleType)
	}

	result := Titles{TitleType: query.TitleType}

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		result.Titles, err = uow.Inventory().ListTitles(ctx, query.TitleType)

		return err
	})
	if err != nil {
		return Titles{}, core.StorageFailure(err)
	}

	result.Count = len(result.Titles)

	return result, nil
}
