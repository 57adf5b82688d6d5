package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

const (
	statementAppendOutbox      = "append_outbox"
	statementUnpublishedOutbox = "unpublished_outbox"
	statementMarkPublished     = "mark_published"
	statementOutboxRecordFound = "outbox_record_exists"
)

type outbox struct{ u *unitOfWork }

func (o outbox) Append(ctx context.Context, record rentalstore.OutboxRecord) error {
	_, err := o.u.exec(ctx, statementAppendOutbox,
		dialect.Insert(tableOutbox).Rows(goqu.Record{
			colID:         record.ID.String(),
			colEventType:  record.EventType,
			colOccurredAt: record.OccurredAt,
			colPayload:    goqu.L(castJsonb, string(record.PayloadJSON)),
		}),
	)

	return err
}

// Unpublished returns every pending record if limit is not positive.
func (o outbox) Unpublished(ctx context.Context, limit int) (rentalstore.OutboxRecords, error) {
	query := dialect.From(tableOutbox).
		Select(outboxColumns...).
		Where(goqu.C(colPublishedAt).IsNull()).
		Order(goqu.C(colSequenceNumber).Asc())

	if limit > 0 {
		query = query.Limit(uint(limit))
	}

	rows, err := o.u.query(ctx, statementUnpublishedOutbox, query)
	if err != nil {
		return nil, err
	}

	return collect(ctx, o.u, rows, scanOutboxRecord)
}

func (o outbox) MarkPublished(ctx context.Context, id rentalstore.OutboxRecordID) error {
	rowsAffected, err := o.u.exec(ctx, statementMarkPublished,
		dialect.Update(tableOutbox).
			Set(goqu.Record{colPublishedAt: goqu.L("NOW()")}).
			Where(goqu.C(colID).Eq(id.String()), goqu.C(colPublishedAt).IsNull()),
	)
	if err != nil {
		return err
	}

	if rowsAffected > 0 {
		return nil
	}

	rows, err := o.u.query(ctx, statementOutboxRecordFound,
		dialect.From(tableOutbox).Select(goqu.L("1")).Where(goqu.C(colID).Eq(id.String())),
	)
	if err != nil {
		return err
	}
	defer o.u.closeRows(ctx, rows)

	if rows.Next() {
		return rentalstore.ErrConcurrencyConflict
	}

	return rentalstore.ErrRecordNotFound
}
