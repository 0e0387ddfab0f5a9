// Package utils provides general-purpose helper utilities used across the
// application: type-safe context keys, JWT token generation and validation,
// password hashing, and HTTP response writing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that may
// store string-keyed values in the same context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authenticated user's id is stored
// in the request context by the auth middleware.
var UserIDCtxKey = contextKey("userID")

// UsernameCtxKey is the key under which the authenticated user's name is
// stored in the request context by the auth middleware.
var UsernameCtxKey = contextKey("username")

// GetUserIDFromContext retrieves the authenticated user's id from ctx.
//
// The ok flag reports whether the value is present and has the expected
// string type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// GetUsernameFromContext retrieves the authenticated user's name from ctx.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}
