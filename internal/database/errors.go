package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrIntegrityViolation is matched by every uniqueness or foreign key
// failure raised by the store, whichever driver produced it.
var ErrIntegrityViolation = errors.New("integrity violation")

// postgres SQLSTATE class 23 codes we map
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// IntegrityError describes a rejected row. Key is the natural key of the
// row the caller tried to write.
type IntegrityError struct {
	Constraint string
	Key        string
	Err        error
}

func (e *IntegrityError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("integrity violation for %s (%s): %v", e.Key, e.Constraint, e.Err)
	}
	return fmt.Sprintf("integrity violation for %s: %v", e.Key, e.Err)
}

func (e *IntegrityError) Unwrap() []error {
	return []error{ErrIntegrityViolation, e.Err}
}

// ClassifyError converts driver constraint failures into *IntegrityError and
// returns any other error unchanged.
func ClassifyError(err error, key string) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return &IntegrityError{Constraint: sqliteConstraint(se.Code()), Key: key, Err: err}
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case pgNotNullViolation, pgForeignKeyViolation, pgUniqueViolation:
			return &IntegrityError{Constraint: pe.ConstraintName, Key: key, Err: err}
		}
	}

	return err
}

func sqliteConstraint(code int) string {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return "unique"
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return "foreign key"
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return "not null"
	default:
		return ""
	}
}
