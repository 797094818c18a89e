package db

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation  = "23505"
	sqlStateForeignKey       = "23503"
	sqlStateUndefinedTable   = "42P01"
	sqlStateCannotConnectNow = "57P03"
	sqlStateTooManyConns     = "53300"
)

// SQLState returns the Postgres error code carried by err, or "".
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// When constraintName is provided the violated constraint must match it.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != sqlStateUniqueViolation {
			return false
		}
		return constraintName == "" || pgErr.ConstraintName == constraintName
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateForeignKey
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// IsUndefinedTable reports whether err was raised against a table that does
// not exist.
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	if SQLState(err) == sqlStateUndefinedTable {
		return true
	}
	return strings.Contains(err.Error(), "no such table")
}

// IsTransient reports whether err is a connectivity failure worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	code := SQLState(err)
	switch {
	case strings.HasPrefix(code, "08"):
		return true
	case code == sqlStateCannotConnectNow, code == sqlStateTooManyConns:
		return true
	}
	return false
}
