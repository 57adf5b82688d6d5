// Package pgtesthelpers provides PostgreSQL integration test utilities with multi-adapter support.
//
// Tests using it are skipped unless LIBRARY_INTEGRATION_TESTS=1. The database is either the one
// TEST_DATABASE_DSN points to or a postgres:17-alpine container started once per test binary.
// Migrations are applied with goose before the first test runs.
//
// Adapter Types:
//
//	PGXPoolWrapper: wraps pgxpool.Pool
//	SQLDBWrapper: wraps database/sql with the lib/pq driver
//	SQLXWrapper: wraps sqlx.DB with the lib/pq driver
//
// Environment Variables:
//
//	LIBRARY_INTEGRATION_TESTS: set to 1 to run integration tests
//	ADAPTER_TYPE: selects adapter (pgx.pool, sql.db, sqlx.db), pgx.pool if empty
//	TEST_DATABASE_DSN: use an existing database instead of a container
package pgtesthelpers
