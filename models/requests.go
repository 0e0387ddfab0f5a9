package models

// RegisterRequest is the JSON body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateNoteRequest is the JSON body of POST /api/notes.
type CreateNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"categories"`
}

// UpdateNoteRequest is the JSON body of PUT /api/notes/{id}.
// Pointer fields distinguish "omitted" from "present but empty".
type UpdateNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Categories *[]string `json:"categories"`
}

// CategoryRequest is the JSON body of POST and PUT category endpoints.
type CategoryRequest struct {
	Name string `json:"name"`
}
