package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound reports that a row the caller referenced does not exist. It is
// returned by reads that find nothing and by updates/deletes that match zero rows.
var ErrNotFound = errors.New("not found")

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrFKViolation    = 1452
)

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

// IsDuplicateEntry reports whether err is a unique-constraint violation
// (e.g. inserting a phone number that already exists).
func IsDuplicateEntry(err error) bool {
	return mysqlErrNumber(err) == mysqlErrDuplicateEntry
}

// IsForeignKeyViolation reports whether err is a foreign-key failure
// (e.g. inserting an address for a customer id that does not exist).
func IsForeignKeyViolation(err error) bool {
	return mysqlErrNumber(err) == mysqlErrFKViolation
}
