package models

import "time"

// MaxCategoryNameLength is the longest category name accepted by the service.
const MaxCategoryNameLength = 24

// Category is a user-defined label attachable to notes.
// The (Name, UserID) pair is unique: no two categories with the same name
// may exist for the same owner.
type Category struct {
	// ID is the unique identifier of the category.
	ID string `json:"id"`

	// UserID is the identifier of the owning user. Every access to a
	// category is scoped by this field.
	UserID string `json:"user_id"`

	// Name is the display name, at most MaxCategoryNameLength characters,
	// non-empty after trimming.
	Name string `json:"name"`

	// CreatedAt is the timestamp when the category was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}

// CategoryWithCount is a Category annotated with a live count of notes
// currently referencing it. The count is always recomputed from the store,
// never cached.
type CategoryWithCount struct {
	Category

	// NoteCount is the number of notes whose category set contains this
	// category at the time of the query.
	NoteCount int64 `json:"noteCount"`
}
