package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrConfigNotFound is returned when a config parameter has no row.
	ErrConfigNotFound = errors.New("config parameter not found")

	// ErrConfigExists is returned by insert-only config writes when the
	// parameter is already present.
	ErrConfigExists = errors.New("config parameter already exists")

	// ErrKeyMaterialNotFound is returned when a user has no wrapped vault key.
	ErrKeyMaterialNotFound = errors.New("key material not found")

	// ErrSecretNotFound is returned when no encrypted secret exists for the
	// requested owner.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrTempPassNotFound is returned when no temporary master pass matches
	// the key hash.
	ErrTempPassNotFound = errors.New("temporary master pass not found")

	// ErrStoreBusy marks transient failures (lock contention, serialization
	// failures, deadlocks). The operation may succeed if retried.
	ErrStoreBusy = errors.New("store is busy")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
