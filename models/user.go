package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user, assigned at registration.
	ID string `json:"id"`

	// Username is the unique public name of the user.
	Username string `json:"username"`

	// Email is the unique address the user logs in with.
	Email string `json:"email"`

	// PasswordHash stores the one-way hash of the user's password.
	// Plaintext passwords are never stored and never logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
