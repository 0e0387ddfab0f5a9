package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassifier abstracts driver-specific error inspection so that
// repositories stay driver-agnostic. Implementations exist for PostgreSQL
// and SQLite.
type ErrorClassifier interface {
	// IsUniqueViolation reports whether err represents a unique-constraint
	// violation.
	IsUniqueViolation(err error) bool

	// UniqueConstraint returns a driver-specific description of the
	// violated unique constraint (a constraint name for PostgreSQL, a
	// "table.column" list for SQLite) and the empty string when err is not
	// a unique violation.
	UniqueConstraint(err error) string
}

// PostgresErrorClassifier implements [ErrorClassifier] for the pgx driver
// by unwrapping *pgconn.PgError values.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// IsUniqueViolation implements [ErrorClassifier]. It matches PostgreSQL
// error code 23505 (unique_violation).
func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return false
}

// UniqueConstraint implements [ErrorClassifier]. For a unique violation it
// returns the name of the violated constraint (e.g. "users_email_idx").
func (c *PostgresErrorClassifier) UniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName
	}

	return ""
}

// SQLiteErrorClassifier implements [ErrorClassifier] for the mattn/go-sqlite3
// driver by unwrapping sqlite3.Error values.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// IsUniqueViolation implements [ErrorClassifier]. It matches the
// SQLITE_CONSTRAINT_UNIQUE and SQLITE_CONSTRAINT_PRIMARYKEY extended codes.
func (c *SQLiteErrorClassifier) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// UniqueConstraint implements [ErrorClassifier]. SQLite has no constraint
// names in its errors; the message carries the affected columns as
// "UNIQUE constraint failed: users.email", so the part after the colon is
// returned.
func (c *SQLiteErrorClassifier) UniqueConstraint(err error) string {
	if !c.IsUniqueViolation(err) {
		return ""
	}

	msg := err.Error()
	if _, cols, found := strings.Cut(msg, ": "); found {
		return cols
	}

	return msg
}
