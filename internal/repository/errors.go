// Package repository holds the hand-written data access code for every
// persisted entity.  Each repository wraps a *sql.DB and exposes one method
// per query; none of them coordinate across tables.
//
// Driver errors are translated into the sentinel values below so that
// handlers can choose a status code without inspecting MySQL error numbers.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by key matches no row.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint,
// e.g. a second account with the same email.  Handlers should translate
// this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate entry")

// ErrReferenceNotFound is returned when an insert references a parent row
// (user, hall, booking) that does not exist.
var ErrReferenceNotFound = errors.New("referenced record does not exist")

// ErrInvalidValue is returned when strict mode rejects a value that does
// not fit its column (too long, out of range, wrong type).
var ErrInvalidValue = errors.New("value does not fit column")

// MySQL server error numbers.
const (
	errDupEntry        = 1062
	errDataTooLong     = 1406
	errOutOfRange      = 1264
	errDataTruncated   = 1265
	errIncorrectValue  = 1366
	errTruncatedWrong  = 1292
	errNoReferencedRow = 1452
)

// mapError converts driver errors into package sentinels.  Unknown errors
// are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDupEntry:
			return fmt.Errorf("%w: %s", ErrDuplicate, me.Message)
		case errNoReferencedRow:
			return fmt.Errorf("%w: %s", ErrReferenceNotFound, me.Message)
		case errDataTooLong, errOutOfRange, errDataTruncated, errIncorrectValue, errTruncatedWrong:
			return fmt.Errorf("%w: %s", ErrInvalidValue, me.Message)
		}
	}
	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// insertID runs an INSERT and returns the generated primary key.
func insertID(res sql.Result, err error) (uint64, error) {
	if err != nil {
		return 0, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
