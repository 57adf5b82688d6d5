package rentalstore

import (
	"errors"
)

// ErrConcurrencyConflict is returned when a guarded update found the record changed by a concurrent transaction.
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

// ErrRecordNotFound is returned by lookups of ids that do not exist.
var ErrRecordNotFound = errors.New("record not found")

// ErrNilDatabaseConnection is returned when a nil database connection is supplied to an engine constructor.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrEmptyTableNameSupplied is returned when an empty table name is configured.
var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")

// ErrBuildingQueryFailed is returned when a SQL statement could not be built.
var ErrBuildingQueryFailed = errors.New("building query failed")

// ErrQueryingFailed is returned when a read query failed at the database.
var ErrQueryingFailed = errors.New("querying records failed")

// ErrScanningDBRowFailed is returned when a result row could not be scanned.
var ErrScanningDBRowFailed = errors.New("scanning db row failed")

// ErrExecutingStatementFailed is returned when a write statement failed at the database.
var ErrExecutingStatementFailed = errors.New("executing statement failed")

// ErrGettingRowsAffectedFailed is returned when the affected row count was not available.
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

// ErrBeginTxFailed is returned when a transaction could not be started.
var ErrBeginTxFailed = errors.New("beginning transaction failed")

// ErrCommitTxFailed is returned when a transaction could not be committed.
var ErrCommitTxFailed = errors.New("committing transaction failed")

// ErrCopiesOutOfBounds is returned when an adjustment would leave 0..TotalAvailableCopies.
var ErrCopiesOutOfBounds = errors.New("available copies out of bounds")
