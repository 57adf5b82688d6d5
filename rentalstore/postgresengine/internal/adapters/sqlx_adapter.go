package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db      *sqlx.DB
	replica *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// NewSQLXAdapterWithReplica creates a new SQLX adapter with a replica for read-only transactions.
func NewSQLXAdapterWithReplica(db *sqlx.DB, replica *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db, replica: replica}
}

// BeginTx starts the transaction with sqlx.DB.BeginTxx and hands its embedded sql.Tx to the shared wrapper.
func (s *SQLXAdapter) BeginTx(ctx context.Context, opts TxOptions) (DBTx, error) {
	db := s.db
	if opts.ReadOnly && opts.PreferReplica && s.replica != nil {
		db = s.replica
	}

	tx, err := db.BeginTxx(ctx, stdTxOptions(opts))
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx.Tx}, nil
}
