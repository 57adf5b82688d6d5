package pgtesthelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore/postgresengine"
	"github.com/AntonStoeckl/library-rentals-go/shell/config"
)

// Adapter type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLX    = "sqlx.db"
)

const truncateAll = `TRUNCATE titles, members, rental_entries, queue_items, messages, outbox RESTART IDENTITY`

// Wrapper abstracts over the different connection types.
type Wrapper interface {
	GetStore() *postgresengine.Store
	CleanUp(t testing.TB)
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) CleanUp(t testing.TB) {
	t.Helper()

	_, err := w.pool.Exec(context.Background(), truncateAll)
	require.NoError(t, err, "error cleaning up the tables")
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) CleanUp(t testing.TB) {
	t.Helper()

	_, err := w.db.ExecContext(context.Background(), truncateAll)
	require.NoError(t, err, "error cleaning up the tables")
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) CleanUp(t testing.TB) {
	t.Helper()

	_, err := w.db.ExecContext(context.Background(), truncateAll)
	require.NoError(t, err, "error cleaning up the tables")
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the wrapper selected by ADAPTER_TYPE on a clean database.
// The wrapper is closed via t.Cleanup.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	dbConfig := testDatabaseConfig(DSN(t))
	ctx := context.Background()

	var wrapper Wrapper

	switch adapterType := strings.ToLower(os.Getenv("ADAPTER_TYPE")); adapterType {
	case typePGXPool, "":
		pool, err := config.OpenPGXPool(ctx, dbConfig, dbConfig.DSN)
		require.NoError(t, err, "error connecting to DB pool in test setup")
		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating store in test setup")
		wrapper = &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db, err := config.OpenSQLDB(ctx, dbConfig)
		require.NoError(t, err, "error connecting to DB in test setup")
		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating store in test setup")
		wrapper = &SQLDBWrapper{db: db, store: store}

	case typeSQLX:
		db, err := config.OpenSQLX(ctx, dbConfig)
		require.NoError(t, err, "error connecting to DB in test setup")
		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating store in test setup")
		wrapper = &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterType))
	}

	wrapper.CleanUp(t)
	t.Cleanup(wrapper.Close)

	return wrapper
}

func testDatabaseConfig(dsn string) config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:          config.DriverPGX,
		DSN:             dsn,
		MaxConns:        20,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}
