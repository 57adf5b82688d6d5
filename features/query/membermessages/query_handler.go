package membermessages

import (
	"context"
	"slices"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	View(ctx context.Context, fn rentalstore.TxFunc) error
	Messages() rentalstore.MessageStore
}

// QueryHandler reads a member inbox.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the query. An unknown member is a core.KindNotFound error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberMessages, error) {
	ctx = rentalstore.WithEventualConsistency(ctx)

	err := h.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		exists, err := uow.Members().Exists(ctx, query.MemberID)
		if err != nil {
			return err
		}

		if !exists {
			return core.NewError(core.KindNotFound, "member %d not found", query.MemberID)
		}

		return nil
	})
	if err != nil {
		return MemberMessages{}, core.StorageFailure(err)
	}

	messages, err := h.store.Messages().ForMember(ctx, query.MemberID)
	if err != nil {
		return MemberMessages{}, core.StorageFailure(err)
	}

	slices.SortStableFunc(messages, func(a, b core.Message) int {
		return b.SendDate.Compare(a.SendDate)
	})

	return MemberMessages{
		MemberID: query.MemberID,
		Messages: messages,
		Count:    len(messages),
	}, nil
}
