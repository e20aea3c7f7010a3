package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes this service cares about.
const (
	codeUniqueViolation    = "23505"
	codeInvalidTextRep     = "22P02" // e.g. "abc" sent to a BIGINT column
	codeNumericOutOfRange  = "22003"
	codeUndefinedTable     = "42P01"
	codeUndefinedColumn    = "42703"
	codeDatatypeMismatch   = "42804"
	codeNotNullViolation   = "23502"
	codeCheckViolation     = "23514"
	codeConnectionFailure  = "08006"
	codeConnectionRejected = "08004"
)

// IsDuplicateKeyError checks if the error is a PostgreSQL unique violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// IsUndefinedTableError checks if the error means the target table does not
// exist. Used to turn queries against a never-populated year into empty
// result sets instead of store failures.
func IsUndefinedTableError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}

// IsSchemaMismatchError checks if the error means a row value was
// incompatible with the fixed shape of an existing table: bad text for a
// numeric column, out-of-range numbers, unknown or constrained columns.
func IsSchemaMismatchError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeInvalidTextRep, codeNumericOutOfRange, codeUndefinedColumn,
		codeDatatypeMismatch, codeNotNullViolation, codeCheckViolation:
		return true
	}
	return false
}
