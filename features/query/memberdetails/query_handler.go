package memberdetails

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

// QueryHandler reads a member and counts its active rentals.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberDetails, error) {
	var result MemberDetails

	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		member, err := shell.FoundOrNil(uow.Members().GetMember(ctx, query.MemberID))
		if err != nil {
			return err
		}

		if member == nil {
			return core.NewError(core.KindNotFound, "member %d not found", query.MemberID)
		}

		active, err := uow.Ledger().ActiveEntriesFor(ctx, query.MemberID)
		if err != nil {
			return err
		}

		result = MemberDetails{Member: *member, ActiveRentalCount: len(active)}

		return nil
	})
	if err != nil {
		return MemberDetails{}, core.StorageFailure(err)
	}

	return result, nil
}
