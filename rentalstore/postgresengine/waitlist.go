package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	statementUnresolvedFor   = "unresolved_queue_items"
	statementGetQueueItem    = "get_queue_item"
	statementAllQueueItems   = "all_queue_items"
	statementCreateQueueItem = "create_queue_item"
	statementResolveQueue    = "resolve_queue_item"
	statementQueueItemExists = "queue_item_exists"
)

type waitlist struct{ u *unitOfWork }

func (w waitlist) UnresolvedFor(ctx context.Context, titleID core.TitleID) ([]core.QueueItem, error) {
	rows, err := w.u.query(ctx, statementUnresolvedFor,
		dialect.From(tableQueueItems).
			Select(queueItemColumns...).
			Where(goqu.C(colTitleID).Eq(titleID), goqu.C(colIsResolved).IsFalse()).
			Order(goqu.C(colTimeAdded).Asc(), goqu.C(colID).Asc()),
	)
	if err != nil {
		return nil, err
	}

	return collect(ctx, w.u, rows, scanQueueItem)
}

func (w waitlist) GetByID(ctx context.Context, id core.QueueItemID) (core.QueueItem, error) {
	rows, err := w.u.query(ctx, statementGetQueueItem,
		dialect.From(tableQueueItems).Select(queueItemColumns...).Where(goqu.C(colID).Eq(id)),
	)
	if err != nil {
		return core.QueueItem{}, err
	}

	return single(ctx, w.u, rows, scanQueueItem)
}

func (w waitlist) All(ctx context.Context) ([]core.QueueItem, error) {
	rows, err := w.u.query(ctx, statementAllQueueItems,
		dialect.From(tableQueueItems).Select(queueItemColumns...).Order(goqu.C(colID).Asc()),
	)
	if err != nil {
		return nil, err
	}

	return collect(ctx, w.u, rows, scanQueueItem)
}

func (w waitlist) Create(ctx context.Context, item core.QueueItem) (core.QueueItem, error) {
	rows, err := w.u.query(ctx, statementCreateQueueItem,
		dialect.Insert(tableQueueItems).Rows(goqu.Record{
			colMemberID:   item.MemberID,
			colTitleID:    item.TitleID,
			colTimeAdded:  item.TimeAdded,
			colIsResolved: item.IsResolved,
		}).Returning(colID),
	)
	if err != nil {
		return core.QueueItem{}, err
	}

	id, err := single(ctx, w.u, rows, scanID)
	if err != nil {
		return core.QueueItem{}, err
	}

	item.ID = id

	return item, nil
}

func (w waitlist) Resolve(ctx context.Context, id core.QueueItemID) error {
	rowsAffected, err := w.u.exec(ctx, statementResolveQueue,
		dialect.Update(tableQueueItems).
			Set(goqu.Record{colIsResolved: true}).
			Where(goqu.C(colID).Eq(id), goqu.C(colIsResolved).IsFalse()),
	)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return w.u.missingOrConflict(ctx, statementQueueItemExists, tableQueueItems, id)
	}

	return nil
}
