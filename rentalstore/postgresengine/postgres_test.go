package postgresengine_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/core"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine"
	"github.com/AntonStoeckl/library-rentals-go/testutil/spies"
)

var (
	readWrite = pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite}
	readOnly  = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
)

func newMockedStore(t *testing.T, options ...postgresengine.Option) (*postgresengine.Store, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "error in arranging test - creating pgxmock pool failed")
	t.Cleanup(mock.Close)

	store, err := postgresengine.NewStoreFromPGXPool(mock, options...)
	require.NoError(t, err, "error in arranging test - creating store failed")

	return store, mock
}

func sqlLike(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func Test_NewStore_RejectsNilConnections(t *testing.T) {
	_, err := postgresengine.NewStoreFromPGXPool(nil)
	assert.ErrorIs(t, err, rentalstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewStoreFromSQLDB(nil)
	assert.ErrorIs(t, err, rentalstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewStoreFromSQLX(nil)
	assert.ErrorIs(t, err, rentalstore.ErrNilDatabaseConnection)
}

func Test_AdjustCopies_GuardViolation_IsConcurrencyConflict(t *testing.T) {
	// arrange
	metrics := spies.NewMetricsCollectorSpy(true)
	store, mock := newMockedStore(t, postgresengine.WithMetrics(metrics))

	mock.ExpectBeginTx(readWrite)
	mock.ExpectExec(sqlLike(`UPDATE "titles"`)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(sqlLike(`SELECT 1 FROM "titles"`)).WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Inventory().AdjustCopies(ctx, 7, -1)
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrConcurrencyConflict)
	assert.True(t, metrics.HasCounterRecordForMetric("rentalstore_concurrency_conflicts_total").
		WithLabel("conflict_source", "guarded_update").
		Assert())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_AdjustCopies_UnknownTitle_IsNotFound(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)

	mock.ExpectBeginTx(readWrite)
	mock.ExpectExec(sqlLike(`UPDATE "titles"`)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(sqlLike(`SELECT 1 FROM "titles"`)).WillReturnRows(pgxmock.NewRows([]string{"?column?"}))
	mock.ExpectRollback()

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Inventory().AdjustCopies(ctx, 99, 1)
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_SerializationFailure_IsConcurrencyConflict(t *testing.T) {
	// arrange
	metrics := spies.NewMetricsCollectorSpy(true)
	store, mock := newMockedStore(t, postgresengine.WithMetrics(metrics))

	mock.ExpectBeginTx(readWrite)
	mock.ExpectExec(sqlLike(`UPDATE "rental_entries"`)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure, Message: "could not serialize access"})
	mock.ExpectRollback()

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Ledger().Update(ctx, core.RentalEntry{ID: 3, MaxReturnDate: time.Now()})
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrConcurrencyConflict)
	assert.ErrorIs(t, err, rentalstore.ErrExecutingStatementFailed)
	assert.True(t, metrics.HasCounterRecordForMetric("rentalstore_concurrency_conflicts_total").
		WithLabel("conflict_source", pgerrcode.SerializationFailure).
		Assert())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_LedgerCreate_DuplicateActiveRental_IsConcurrencyConflict(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)

	mock.ExpectBeginTx(readWrite)
	mock.ExpectQuery(sqlLike(`INSERT INTO "rental_entries"`)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		_, err := uow.Ledger().Create(ctx, core.RentalEntry{MemberID: 1, TitleID: 2, TitleType: core.TitleTypeBook})
		return err
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_LedgerCreate_AssignsReturnedID(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)
	rentedAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBeginTx(readWrite)
	mock.ExpectQuery(sqlLike(`INSERT INTO "rental_entries"`)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	// act
	var created core.RentalEntry
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		created, err = uow.Ledger().Create(ctx, core.RentalEntry{
			MemberID:      1,
			TitleID:       2,
			TitleType:     core.TitleTypeBook,
			RentedDate:    rentedAt,
			MaxReturnDate: core.DueDateFor(core.TitleTypeBook, rentedAt, 0),
		})

		return err
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, int64(1), created.MemberID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_LedgerUpdate_PersistsRestartedRentalPeriod(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)
	prolongedAt := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	entry := core.RentalEntry{
		ID:              1,
		TitleType:       core.TitleTypeBook,
		RentedDate:      prolongedAt,
		MaxReturnDate:   core.DueDateFor(core.TitleTypeBook, prolongedAt, 1),
		TimesProlongued: 1,
	}

	mock.ExpectBeginTx(readWrite)
	mock.ExpectExec(sqlLike(`UPDATE "rental_entries" SET `) + `.*` +
		sqlLike(`"rented_date"='2026-03-01T00:00:00Z'`) + `.*` +
		sqlLike(`"times_prolongued"=1`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Ledger().Update(ctx, entry)
	})

	// assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_View_RunsReadOnlyTransaction(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)

	mock.ExpectBeginTx(readOnly)
	mock.ExpectQuery(sqlLike(`FROM "titles"`)).WillReturnRows(
		pgxmock.NewRows([]string{
			"id", "title_type", "author", "name", "available_copies", "total_available_copies",
			"number_of_pages", "isbn", "publish_year", "number_of_minutes",
		}).AddRow(int64(1), "Book", "Frank Herbert", "Dune", 2, 3, int64(412), "978-0441013593", nil, nil),
	)
	mock.ExpectCommit()

	// act
	var title core.Title
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		title, err = uow.Inventory().GetTitle(ctx, 1)

		return err
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.TitleTypeBook, title.Type)
	assert.Equal(t, 2, title.AvailableCopies)
	require.NotNil(t, title.Book)
	assert.Equal(t, 412, title.Book.NumberOfPages)
	assert.Nil(t, title.Dvd)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_GetTitle_NoRow_IsNotFound(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)

	mock.ExpectBeginTx(readOnly)
	mock.ExpectQuery(sqlLike(`FROM "titles"`)).WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	// act
	err := store.View(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		_, err := uow.Inventory().GetTitle(ctx, 5)
		return err
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_UpdateMember_UnknownMember_IsNotFound(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)
	member := core.Member{ID: 9, FirstName: "Grace", LastName: "Hopper", PersonalID: "ID-9"}

	mock.ExpectBeginTx(readWrite)
	mock.ExpectExec(sqlLike(`UPDATE "members" SET `) + `.*` + sqlLike(`"last_name"='Hopper'`) + `.*` + sqlLike(`WHERE ("id" = 9)`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Catalog().UpdateMember(ctx, member)
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_DomainError_RollsBackWithoutErrorLog(t *testing.T) {
	// arrange
	logger, logSpy := spies.NewLogger()
	store, mock := newMockedStore(t, postgresengine.WithLogger(logger))
	domainErr := core.NewError(core.KindNotFound, "member %d not found", 1)

	mock.ExpectBeginTx(readWrite)
	mock.ExpectRollback()

	// act
	err := store.WithinTx(context.Background(), func(_ context.Context, _ rentalstore.UnitOfWork) error {
		return domainErr
	})

	// assert
	assert.ErrorIs(t, err, domainErr)
	assert.False(t, logSpy.HasErrorLogWithMessage("transaction failed").Assert())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_CommitFailure_IsReportedAndLogged(t *testing.T) {
	// arrange
	logger, logSpy := spies.NewLogger()
	store, mock := newMockedStore(t, postgresengine.WithLogger(logger))

	mock.ExpectBeginTx(readWrite)
	mock.ExpectCommit().WillReturnError(errors.New("connection reset by peer"))

	// act
	err := store.WithinTx(context.Background(), func(_ context.Context, _ rentalstore.UnitOfWork) error {
		return nil
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrCommitTxFailed)
	assert.True(t, logSpy.HasErrorLogWithMessage("transaction failed").Assert())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_Outbox_MarkPublishedTwice_IsConcurrencyConflict(t *testing.T) {
	// arrange
	store, mock := newMockedStore(t)
	record, err := rentalstore.BuildOutboxRecord(core.TitleReturnedEventType, time.Now(), []byte(`{"titleId":1}`))
	require.NoError(t, err, "error in arranging test - building outbox record failed")

	mock.ExpectBeginTx(readWrite)
	mock.ExpectExec(sqlLike(`UPDATE "outbox"`)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(sqlLike(`SELECT 1 FROM "outbox"`)).WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	// act
	err = store.WithinTx(context.Background(), func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Outbox().MarkPublished(ctx, record.ID)
	})

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_WithTracing_FinishesSpanPerTransaction(t *testing.T) {
	// arrange
	tracing := spies.NewTracingCollectorSpy(true)
	store, mock := newMockedStore(t, postgresengine.WithTracing(tracing))

	mock.ExpectBeginTx(readWrite)
	mock.ExpectCommit()

	// act
	err := store.WithinTx(context.Background(), func(_ context.Context, _ rentalstore.UnitOfWork) error {
		return nil
	})

	// assert
	require.NoError(t, err)
	assert.True(t, tracing.HasSpanWithStatus("rentalstore.tx", "success"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
