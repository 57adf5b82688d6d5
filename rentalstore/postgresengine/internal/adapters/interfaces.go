package adapters

import "context"

// TxOptions selects the transaction flavor.
type TxOptions struct {
	// ReadOnly opens a READ ONLY transaction at REPEATABLE READ, otherwise SERIALIZABLE read-write.
	ReadOnly bool

	// PreferReplica routes the transaction to the replica connection, if one is configured.
	// It is ignored for read-write transactions.
	PreferReplica bool
}

// DBAdapter defines the interface for database operations needed by the rental store.
type DBAdapter interface {
	BeginTx(ctx context.Context, opts TxOptions) (DBTx, error)
}

// DBTx is one open transaction.
type DBTx interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
