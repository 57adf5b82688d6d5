package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const defaultMaxIdleConnections = 10

// PGXPoolConfig creates a pgxpool.Config from the database settings.
func PGXPoolConfig(db DatabaseConfig, dsn string) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("config: parse dsn: %w", err)
	}

	poolConfig.MaxConns = db.MaxConns
	poolConfig.MinConns = db.MinConns
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = db.ConnectTimeout

	return poolConfig, nil
}

// OpenPGXPool opens and pings a pgxpool for dsn.
func OpenPGXPool(ctx context.Context, db DatabaseConfig, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := PGXPoolConfig(db, dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("config: open pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("config: ping pgx pool: %w", err)
	}

	return pool, nil
}

// OpenSQLDB opens and pings a database/sql handle using the lib/pq driver.
func OpenSQLDB(ctx context.Context, db DatabaseConfig) (*sql.DB, error) {
	handle, err := sql.Open("postgres", db.DSN)
	if err != nil {
		return nil, fmt.Errorf("config: open sql db: %w", err)
	}

	configureSQLPool(handle, db)

	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("config: ping sql db: %w", err)
	}

	return handle, nil
}

// OpenSQLX opens and pings a sqlx handle using the lib/pq driver.
func OpenSQLX(ctx context.Context, db DatabaseConfig) (*sqlx.DB, error) {
	handle, err := sqlx.ConnectContext(ctx, "postgres", db.DSN)
	if err != nil {
		return nil, fmt.Errorf("config: open sqlx db: %w", err)
	}

	configureSQLPool(handle.DB, db)

	return handle, nil
}

func configureSQLPool(handle *sql.DB, db DatabaseConfig) {
	handle.SetMaxOpenConns(int(db.MaxConns))
	handle.SetMaxIdleConns(defaultMaxIdleConnections)
	handle.SetConnMaxLifetime(db.MaxConnLifetime)
	handle.SetConnMaxIdleTime(db.MaxConnIdleTime)
}
