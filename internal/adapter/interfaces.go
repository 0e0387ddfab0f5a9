// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the note keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples client code
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/mkarev/go-note-keeper/models"
)

// ServerAdapter defines transport-agnostic communication with the note
// keeper server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called after a
	// successful Login; Login calls it automatically.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// Register creates a new account on the server.
	Register(ctx context.Context, username, email, password string) (models.User, error)

	// Login authenticates against the server and stores the returned
	// bearer token for subsequent requests.
	Login(ctx context.Context, email, password string) (string, error)

	// CreateNote persists a new note. The returned note carries the stored
	// title, which may differ from the requested one.
	CreateNote(ctx context.Context, req models.CreateNoteRequest) (models.Note, error)

	// ListNotes returns all notes of the authenticated user.
	ListNotes(ctx context.Context) ([]models.Note, error)

	// GetNote returns the note with the given id.
	GetNote(ctx context.Context, id string) (models.Note, error)

	// GetNoteByTitle returns the note with the exact title.
	GetNoteByTitle(ctx context.Context, title string) (models.Note, error)

	// UpdateNote applies a partial update to the note with the given id.
	UpdateNote(ctx context.Context, id string, req models.UpdateNoteRequest) (models.Note, error)

	// DeleteNote removes the note with the given id.
	DeleteNote(ctx context.Context, id string) error

	// CreateCategory returns the category with the given name, creating it
	// on the server when absent.
	CreateCategory(ctx context.Context, name string) (models.Category, error)

	// ListCategories returns all categories of the authenticated user with
	// live note counts.
	ListCategories(ctx context.Context) ([]models.CategoryWithCount, error)

	// GetCategory returns the category with the given id.
	GetCategory(ctx context.Context, id string) (models.Category, error)

	// UpdateCategory renames the category with the given id.
	UpdateCategory(ctx context.Context, id, name string) (models.Category, error)

	// DeleteCategory removes the category and reports how many notes had
	// the reference pulled.
	DeleteCategory(ctx context.Context, id string) (int64, error)
}
