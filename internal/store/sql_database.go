// Package store implements the persistence layer of the note keeper:
// SQL-backed repositories for users, categories, and notes, with a
// PostgreSQL primary backend and a SQLite backend for single-node
// deployments. Driver differences (placeholder style, unique-violation
// detection) are isolated behind the DB handle and its error classifier.
package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/migrations"
)

// DB wraps the raw *sql.DB with the driver-specific pieces repositories
// need: a squirrel statement builder configured with the driver's
// placeholder format, and an error classifier for constraint violations.
type DB struct {
	*sql.DB

	dialect    string
	builder    sq.StatementBuilderType
	classifier ErrorClassifier
	logger     *logger.Logger
}

// Builder returns the statement builder configured for this database's
// placeholder format.
func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}

// Migrate applies all embedded schema migrations to the database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
