package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine/internal/adapters"
)

const (
	operationWithinTx = "within_tx"
	operationView     = "view"
	operationMessages = "messages"
)

// PGXPool is the part of pgxpool.Pool the Store needs, pgxmock pools satisfy it too.
type PGXPool = adapters.PGXBeginner

// Store is the PostgreSQL rental store.
type Store struct {
	db               adapters.DBAdapter
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(pool PGXPool, options ...Option) (*Store, error) {
	if pool == nil {
		return nil, rentalstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(pool), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store that sends eventually consistent views to the replica pool.
func NewStoreFromPGXPoolAndReplica(pool *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if pool == nil {
		return nil, rentalstore.ErrNilDatabaseConnection
	}

	if replica == nil {
		return newStore(adapters.NewPGXAdapter(pool), options...)
	}

	return newStore(adapters.NewPGXAdapterWithReplica(pool, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, rentalstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, rentalstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{db: db}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WithinTx runs fn in one SERIALIZABLE read-write transaction on the primary.
func (s *Store) WithinTx(ctx context.Context, fn rentalstore.TxFunc) error {
	return s.runTx(ctx, operationWithinTx, adapters.TxOptions{}, asUnitOfWorkFunc(fn))
}

// View runs fn in a READ ONLY transaction, on the replica if ctx carries EventualConsistency.
func (s *Store) View(ctx context.Context, fn rentalstore.TxFunc) error {
	opts := adapters.TxOptions{
		ReadOnly:      true,
		PreferReplica: rentalstore.ConsistencyFrom(ctx) == rentalstore.EventualConsistency,
	}

	return s.runTx(ctx, operationView, opts, asUnitOfWorkFunc(fn))
}

// Messages returns the member inbox. Each call runs in its own short transaction.
func (s *Store) Messages() rentalstore.MessageStore {
	return messageStore{store: s}
}

func asUnitOfWorkFunc(fn rentalstore.TxFunc) func(context.Context, *unitOfWork) error {
	return func(ctx context.Context, u *unitOfWork) error {
		return fn(ctx, u)
	}
}

func (s *Store) runTx(ctx context.Context, operation string, opts adapters.TxOptions, fn func(context.Context, *unitOfWork) error) error {
	observer, ctx := s.startTxObservation(ctx, operation, opts)
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		err = classify(errors.Join(rentalstore.ErrBeginTxFailed, err))
		observer.finishError(err, time.Since(start))

		return err
	}

	uow := &unitOfWork{tx: tx, store: s}

	if err := fn(ctx, uow); err != nil {
		s.rollback(ctx, tx)
		observer.finishError(err, time.Since(start))

		return err
	}

	if err := tx.Commit(ctx); err != nil {
		err = classify(errors.Join(rentalstore.ErrCommitTxFailed, err))
		observer.finishError(err, time.Since(start))

		return err
	}

	observer.finishSuccess(uow.statements, time.Since(start))

	return nil
}

func (s *Store) rollback(ctx context.Context, tx adapters.DBTx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.logWarn(ctx, logMsgRollbackFailed, logAttrError, err.Error())
	}
}
