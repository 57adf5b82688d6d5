package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine/internal/adapters"
)

// sqlBuilder is implemented by the goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

type unitOfWork struct {
	tx         adapters.DBTx
	store      *Store
	statements int
}

func (u *unitOfWork) Inventory() rentalstore.InventoryStore { return inventory{u} }
func (u *unitOfWork) Members() rentalstore.MemberStore      { return members{u} }
func (u *unitOfWork) Ledger() rentalstore.RentalLedger      { return ledger{u} }
func (u *unitOfWork) Waitlist() rentalstore.WaitlistStore   { return waitlist{u} }
func (u *unitOfWork) Outbox() rentalstore.Outbox            { return outbox{u} }
func (u *unitOfWork) Catalog() rentalstore.Catalog          { return catalog{u} }

func (u *unitOfWork) query(ctx context.Context, statement string, builder sqlBuilder) (adapters.DBRows, error) {
	sqlQuery, _, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Join(rentalstore.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	rows, err := u.tx.Query(ctx, sqlQuery)
	u.observeStatement(ctx, statement, sqlQuery, time.Since(start))

	if err != nil {
		return nil, u.statementFailed(ctx, sqlQuery, errors.Join(rentalstore.ErrQueryingFailed, err))
	}

	return rows, nil
}

func (u *unitOfWork) exec(ctx context.Context, statement string, builder sqlBuilder) (int64, error) {
	sqlQuery, _, err := builder.ToSQL()
	if err != nil {
		return 0, errors.Join(rentalstore.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	result, err := u.tx.Exec(ctx, sqlQuery)
	u.observeStatement(ctx, statement, sqlQuery, time.Since(start))

	if err != nil {
		return 0, u.statementFailed(ctx, sqlQuery, errors.Join(rentalstore.ErrExecutingStatementFailed, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(rentalstore.ErrGettingRowsAffectedFailed, err)
	}

	return rowsAffected, nil
}

// exists reports whether table has a row with id.
func (u *unitOfWork) exists(ctx context.Context, statement, table string, id int64) (bool, error) {
	rows, err := u.query(ctx, statement, dialect.From(table).Select(goqu.L("1")).Where(goqu.C(colID).Eq(id)).Limit(1))
	if err != nil {
		return false, err
	}
	defer u.closeRows(ctx, rows)

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, classify(errors.Join(rentalstore.ErrQueryingFailed, err))
	}

	return found, nil
}

// missingOrConflict explains a guarded update that affected no row.
func (u *unitOfWork) missingOrConflict(ctx context.Context, statement, table string, id int64) error {
	found, err := u.exists(ctx, statement, table, id)
	if err != nil {
		return err
	}

	if !found {
		return rentalstore.ErrRecordNotFound
	}

	return rentalstore.ErrConcurrencyConflict
}

func (u *unitOfWork) statementFailed(ctx context.Context, sqlQuery string, err error) error {
	err = classify(err)

	if errors.Is(err, rentalstore.ErrConcurrencyConflict) {
		u.store.logInfo(ctx, logMsgOperation+logMsgConcurrencyConflict, logAttrError, err.Error(), logAttrQuery, sqlQuery)
	} else {
		u.store.logError(ctx, logMsgStatementFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
	}

	return err
}

func (u *unitOfWork) observeStatement(ctx context.Context, statement, sqlQuery string, duration time.Duration) {
	u.statements++
	u.store.logDebug(ctx, logMsgSQLExecuted+statement, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	u.store.recordDuration(ctx, metricStatementDuration, duration, map[string]string{labelStatement: statement})
}

func (u *unitOfWork) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		u.store.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

// collect scans all rows and closes them.
func collect[T any](ctx context.Context, u *unitOfWork, rows adapters.DBRows, scan func(adapters.DBRows) (T, error)) ([]T, error) {
	defer u.closeRows(ctx, rows)

	items := make([]T, 0)

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, errors.Join(rentalstore.ErrScanningDBRowFailed, err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(errors.Join(rentalstore.ErrQueryingFailed, err))
	}

	return items, nil
}

// single scans the only row, no row at all is rentalstore.ErrRecordNotFound.
func single[T any](ctx context.Context, u *unitOfWork, rows adapters.DBRows, scan func(adapters.DBRows) (T, error)) (T, error) {
	items, err := collect(ctx, u, rows, scan)
	if err != nil {
		var zero T
		return zero, err
	}

	if len(items) == 0 {
		var zero T
		return zero, rentalstore.ErrRecordNotFound
	}

	return items[0], nil
}

func scanID(rows adapters.DBRows) (int64, error) {
	var id int64
	err := rows.Scan(&id)

	return id, err
}
