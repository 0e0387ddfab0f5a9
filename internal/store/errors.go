package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registration fails because
	// another user already owns the email address.
	ErrEmailAlreadyExists = errors.New("email is already in use")

	// ErrUsernameAlreadyExists is returned when registration fails because
	// another user already owns the username.
	ErrUsernameAlreadyExists = errors.New("username is already in use")

	// ErrNoUserWasFound is returned when a user lookup produces an empty
	// result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrCategoryAlreadyExists is returned when an insert or rename would
	// violate the per-owner category name uniqueness constraint.
	ErrCategoryAlreadyExists = errors.New("category already exists")

	// ErrCategoryNotFound is returned when a query targets a category that
	// does not exist for the given owner. Deliberately indistinguishable
	// from "exists but belongs to another owner".
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrNoteNotFound is returned when a query targets a note that does not
	// exist for the given owner.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrNoteTitleTaken is returned when an insert or update hits the
	// per-owner (user_id, title) uniqueness constraint. The service layer
	// reacts by recomputing the title and retrying.
	ErrNoteTitleTaken = errors.New("note title is already taken")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
