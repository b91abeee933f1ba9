package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrUnavailable marks failures to reach the engine: refused or dropped
	// connections, exhausted pools. It is not retried here.
	ErrUnavailable = errors.New("store unavailable")
	// ErrPoolTimeout is returned when no pooled connection frees up in time.
	ErrPoolTimeout = fmt.Errorf("%w: timed out waiting for a pooled connection", ErrUnavailable)
	// ErrValidation marks records rejected by the engine's own constraints.
	ErrValidation = errors.New("record rejected by store constraints")
	// ErrMapping marks rows that could not be mapped into records.
	ErrMapping = errors.New("unexpected row data")
)

// MySQL server error numbers reported for constraint and data violations.
var mysqlValidationErrors = map[uint16]bool{
	1048: true, // column cannot be null
	1062: true, // duplicate entry
	1264: true, // out of range value
	1292: true, // incorrect value
	1364: true, // field doesn't have a default value
	1366: true, // incorrect string/integer value
	1406: true, // data too long
	3140: true, // invalid JSON text
	3819: true, // check constraint violated
}

// Classify wraps err with ErrUnavailable or ErrValidation when the driver error
// says so. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrValidation) || errors.Is(err, ErrMapping) {
		return err
	}

	switch {
	case isValidation(err):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case isUnavailable(err):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func isValidation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 22: data exception, 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlValidationErrors[myErr.Number]
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_MISMATCH, sqlite3.SQLITE_TOOBIG:
			return true
		}
	}
	return false
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08: connection exception, 53: insufficient resources, 57P: operator intervention
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "53") || strings.HasPrefix(pgErr.Code, "57P")
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR, sqlite3.SQLITE_FULL:
			return true
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
