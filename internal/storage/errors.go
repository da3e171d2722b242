package storage

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Typed errors returned by the store. Constraint violations are translated
// at the store boundary and never leaked as raw driver errors.
var (
	// ErrDuplicateUsername is returned when registering a username that
	// already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateCategory is returned when adding a category whose name
	// already exists.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyName is returned when a name is empty after trimming.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidAmount is returned when an expense amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrUnknownCategory is returned when an expense references a category
	// that does not currently exist.
	ErrUnknownCategory = errors.New("unknown category")
)

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
