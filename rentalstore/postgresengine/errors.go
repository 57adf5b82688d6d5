package postgresengine

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

const (
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeNotFound            = "not_found"
	errorTypeDatabase            = "database"
	errorTypeOther               = "other"
)

// sqlState returns the SQLSTATE of a pgx or lib/pq error, or "".
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// isConflictState reports whether PostgreSQL aborted the statement because of a concurrent transaction.
func isConflictState(code string) bool {
	switch code {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.UniqueViolation:
		return true
	default:
		return false
	}
}

// classify joins ErrConcurrencyConflict onto database errors that a retry can resolve.
func classify(err error) error {
	if err == nil || errors.Is(err, rentalstore.ErrConcurrencyConflict) {
		return err
	}

	if isConflictState(sqlState(err)) {
		return errors.Join(rentalstore.ErrConcurrencyConflict, err)
	}

	return err
}

func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, rentalstore.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, rentalstore.ErrRecordNotFound), errors.Is(err, pgx.ErrNoRows):
		return errorTypeNotFound
	case sqlState(err) != "":
		return errorTypeDatabase
	default:
		return errorTypeOther
	}
}
