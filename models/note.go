package models

import "time"

// Note is a single note owned by exactly one user.
//
// The Title is unique per owner at all times: the service rewrites a
// colliding title by appending " (N)" before persisting, so the stored title
// may differ from the one the caller requested.
type Note struct {
	// ID is the unique identifier of the note.
	ID string `json:"id"`

	// UserID is the identifier of the owning user. Every access to a note
	// is scoped by this field.
	UserID string `json:"user_id"`

	// Title is the note title, non-empty after trimming, unique per owner.
	Title string `json:"title"`

	// Content is the note body, non-empty after trimming.
	Content string `json:"content"`

	// Categories holds the ids of the categories this note references.
	// Order is irrelevant; every referenced category belongs to UserID.
	// The set may be empty.
	Categories []string `json:"categories"`

	// CreatedAt is the timestamp when the note was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteUpdate describes a partial update of a note.
//
// Nil pointer fields are left unchanged; this is how the service
// distinguishes an omitted field from an explicitly empty one.
type NoteUpdate struct {
	// ID identifies the note being updated.
	ID string `json:"-"`

	// UserID is the acting user; the update is rejected when the note is
	// not owned by this user.
	UserID string `json:"-"`

	// Title, when non-nil, replaces the note title. The new value is
	// re-run through the title uniqueness rewrite.
	Title *string `json:"title,omitempty"`

	// Content, when non-nil, replaces the note body.
	Content *string `json:"content,omitempty"`

	// Categories, when non-nil, replaces the whole category set. All ids
	// must belong to the acting user.
	Categories *[]string `json:"categories,omitempty"`
}
