package store

import (
	"context"

	"github.com/mkarev/go-note-keeper/models"
)

// UserRepository persists user identities with hashed credentials.
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields populated. Returns ErrEmailAlreadyExists or
	// ErrUsernameAlreadyExists on the respective unique violations.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user owning the email address, or
	// ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByUsername returns the user owning the username, or
	// ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// CategoryRepository persists categories scoped to their owning user.
type CategoryRepository interface {
	// CreateCategory persists a new category. Returns
	// ErrCategoryAlreadyExists when the (owner, name) pair is taken.
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)

	// FindCategoryByID returns the owner's category with the given id, or
	// ErrCategoryNotFound.
	FindCategoryByID(ctx context.Context, id, userID string) (models.Category, error)

	// FindCategoryByName returns the owner's category with the given name,
	// or ErrCategoryNotFound.
	FindCategoryByName(ctx context.Context, name, userID string) (models.Category, error)

	// FindCategoriesByIDs returns every category whose id is in ids AND
	// whose owner is userID. Categories of other owners are silently
	// absent from the result.
	FindCategoriesByIDs(ctx context.Context, ids []string, userID string) ([]models.Category, error)

	// FindAllCategories returns all of the owner's categories, each with a
	// live count of notes referencing it.
	FindAllCategories(ctx context.Context, userID string) ([]models.CategoryWithCount, error)

	// UpdateCategoryName renames the owner's category in place. Returns
	// ErrCategoryNotFound when no owned category matches, or
	// ErrCategoryAlreadyExists when the new name is taken.
	UpdateCategoryName(ctx context.Context, id, userID, name string) (models.Category, error)

	// DeleteCategory removes the owner's category and pulls its reference
	// out of every note, as a single transaction. It reports how many
	// notes were touched. Returns ErrCategoryNotFound when no owned
	// category matches.
	DeleteCategory(ctx context.Context, id, userID string) (int64, error)
}

// NoteRepository persists notes scoped to their owning user.
type NoteRepository interface {
	// CreateNote persists a new note together with its category
	// references, as a single transaction. Returns ErrNoteTitleTaken when
	// the (owner, title) pair is already in use.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// FindAllNotes returns every note owned by userID with categories
	// loaded.
	FindAllNotes(ctx context.Context, userID string) ([]models.Note, error)

	// FindNoteByID returns the owner's note with the given id, or
	// ErrNoteNotFound.
	FindNoteByID(ctx context.Context, id, userID string) (models.Note, error)

	// FindNoteOwner returns the user id owning the note, regardless of the
	// caller. Lets the service distinguish "not yours" from "gone" where
	// the API contract requires it. Returns ErrNoteNotFound when no note
	// with the id exists at all.
	FindNoteOwner(ctx context.Context, id string) (string, error)

	// FindNoteByTitle returns the owner's note with the exact title, or
	// ErrNoteNotFound.
	FindNoteByTitle(ctx context.Context, title, userID string) (models.Note, error)

	// TitleExists reports whether the owner already has a note with the
	// given title, excluding the note with id excludeID from the check.
	TitleExists(ctx context.Context, userID, title, excludeID string) (bool, error)

	// UpdateNote applies a partial update as a single transaction and
	// returns the updated note. Returns ErrNoteNotFound when no owned
	// note matches, or ErrNoteTitleTaken on a title collision.
	UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error)

	// DeleteNote removes the owner's note permanently, or returns
	// ErrNoteNotFound.
	DeleteNote(ctx context.Context, id, userID string) error
}
