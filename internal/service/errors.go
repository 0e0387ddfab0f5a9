package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrEmptyTitle   = errors.New("note title must not be empty")
	ErrEmptyContent = errors.New("note content must not be empty")
	ErrInvalidID    = errors.New("malformed identifier")

	ErrEmptyCategoryName   = errors.New("category name must not be empty")
	ErrCategoryNameTooLong = errors.New("category name is too long")

	// ErrForbidden covers owning-mismatch on note update and references to
	// categories the caller does not own.
	ErrForbidden = errors.New("resource belongs to another user")
)
