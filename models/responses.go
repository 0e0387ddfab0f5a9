package models

// Response envelopes returned by the HTTP handlers. Success responses carry
// a human-readable message alongside the entity; failures use ErrorResponse.

// RegisterResponse is returned by POST /api/auth/register.
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// NoteResponse wraps a single note.
type NoteResponse struct {
	Message string `json:"message,omitempty"`
	Note    Note   `json:"note"`
}

// NotesResponse wraps the full note list of a user.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// UpdatedNoteResponse is returned by PUT /api/notes/{id}.
type UpdatedNoteResponse struct {
	Message     string `json:"message"`
	UpdatedNote Note   `json:"updatedNote"`
}

// CategoryResponse wraps a single category.
type CategoryResponse struct {
	Message  string   `json:"message,omitempty"`
	Category Category `json:"category"`
}

// CategoriesResponse wraps the category list of a user, each entry annotated
// with a live note count.
type CategoriesResponse struct {
	Categories []CategoryWithCount `json:"categories"`
}

// DeleteResponse is returned by delete endpoints. NotesAffected is only set
// on category deletion and reports how many notes had the reference pulled.
type DeleteResponse struct {
	Message       string `json:"message"`
	NotesAffected *int64 `json:"notesAffected,omitempty"`
}

// ErrorResponse is the uniform failure body. It carries a structured reason
// string and never leaks stack traces or internal identifiers.
type ErrorResponse struct {
	Error string `json:"error"`
}
