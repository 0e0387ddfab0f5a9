package service

import (
	"context"

	"github.com/mkarev/go-note-keeper/models"
)

type AuthService interface {
	// Register creates a new user account with a hashed password.
	Register(ctx context.Context, username, email, password string) (models.User, error)

	// Login verifies the email/password pair and returns the account.
	Login(ctx context.Context, email, password string) (models.User, error)

	// CreateToken issues a signed JWT carrying the user's identity claims.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and resolves the identity it
	// carries.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type CategoryService interface {
	// Create returns the owner's category with the given name, creating it
	// if absent. The boolean reports whether a new record was created.
	Create(ctx context.Context, name, ownerID string) (models.Category, bool, error)

	// List returns all of the owner's categories with live note counts.
	List(ctx context.Context, ownerID string) ([]models.CategoryWithCount, error)

	// GetByID returns the owner's category with the given id.
	GetByID(ctx context.Context, id, ownerID string) (models.Category, error)

	// GetByName returns the owner's category with the exact name.
	GetByName(ctx context.Context, name, ownerID string) (models.Category, error)

	// Update renames the owner's category.
	Update(ctx context.Context, id, ownerID, name string) (models.Category, error)

	// Delete removes the owner's category and pulls its reference from
	// every note. It reports how many notes were touched.
	Delete(ctx context.Context, id, ownerID string) (int64, error)
}

type NoteService interface {
	// Create persists a new note. The stored title may differ from the
	// requested one when the owner already has a note with that title.
	Create(ctx context.Context, title, content string, categoryIDs []string, ownerID string) (models.Note, error)

	// List returns all of the owner's notes.
	List(ctx context.Context, ownerID string) ([]models.Note, error)

	// GetByID returns the owner's note with the given id.
	GetByID(ctx context.Context, id, ownerID string) (models.Note, error)

	// GetByTitle returns the owner's note with the exact title.
	GetByTitle(ctx context.Context, title, ownerID string) (models.Note, error)

	// Update applies a partial update to the owner's note. Nil fields are
	// left unchanged.
	Update(ctx context.Context, update models.NoteUpdate) (models.Note, error)

	// Delete removes the owner's note permanently.
	Delete(ctx context.Context, id, ownerID string) error
}
