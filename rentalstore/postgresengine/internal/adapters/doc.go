// Package adapters provide database adapter implementations for the PostgreSQL rental store.
//
// The adapters support pgx.Pool, sql.DB, and sqlx.DB behind one DBAdapter interface.
// Every statement runs inside a DBTx, the store never issues statements outside a transaction.
package adapters
