package members

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads the member register.
type QueryHandler struct {
	store shell.ViewsRentals
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store shell.ViewsRentals) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query. An empty register is an empty result, not an error.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Members, error) {
	var result Members

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		result.Members, err = uow.Members().ListMembers(ctx)

		return err
	})
	if err != nil {
		return Members{}, core.StorageFailure(err)
	}

	result.Count = len(result.Members)

	return result, nil
}
