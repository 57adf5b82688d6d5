// Package migrations embeds the schema of the PostgreSQL rental store and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// ErrMigrationFailed wraps errors of a failed migration run.
var ErrMigrationFailed = errors.New("applying migrations failed")

// Up applies all pending migrations and returns the versions it applied.
func Up(ctx context.Context, db *sql.DB) ([]int64, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return nil, errors.Join(ErrMigrationFailed, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, errors.Join(ErrMigrationFailed, err)
	}

	versions := make([]int64, 0, len(results))
	for _, result := range results {
		versions = append(versions, result.Source.Version)
	}

	return versions, nil
}
