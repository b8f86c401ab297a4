package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes worth calling out in logs.
const (
	CodeQueryCanceled     = "57014"
	CodeConnectionFailure = "08006"
	CodeUndefinedTable    = "42P01"
)

// ErrorCode extracts the Postgres SQLSTATE from err, or "" when err is not a server error.
func ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsQueryCanceled reports whether Postgres aborted the statement, typically after a context cancel.
func IsQueryCanceled(err error) bool {
	return ErrorCode(err) == CodeQueryCanceled
}
