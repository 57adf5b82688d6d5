// Package postgresengine provides a PostgreSQL implementation of rentalstore.Store.
//
// Units of work run in SERIALIZABLE read-write transactions, views in READ ONLY
// transactions that go to a replica when the context asks for eventual consistency.
// Statements are built with goqu against the schema in the migrations package.
//
// Concurrency is detected in two ways, both reported as rentalstore.ErrConcurrencyConflict:
//   - guarded updates that affect no row (copies out of bounds, entry already returned, item already resolved)
//   - serialization failures, deadlocks, and unique violations raised by PostgreSQL
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//
//	err := store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
//		return uow.Inventory().AdjustCopies(ctx, titleID, -1)
//	})
package postgresengine
