package http

import (
	"errors"
	"net/http"

	"github.com/mkarev/go-note-keeper/internal/service"
	"github.com/mkarev/go-note-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrEmptyTitle:          http.StatusBadRequest,
	service.ErrEmptyContent:        http.StatusBadRequest,
	service.ErrEmptyCategoryName:   http.StatusBadRequest,
	service.ErrCategoryNameTooLong: http.StatusBadRequest,
	service.ErrInvalidID:           http.StatusBadRequest,

	service.ErrWrongPassword: http.StatusUnauthorized,

	// a presented-but-bad token is a 403, not a 401; the 401 cases are
	// handled inside the auth middleware before the token is parsed
	service.ErrTokenIsExpiredOrInvalid: http.StatusForbidden,
	service.ErrForbidden:               http.StatusForbidden,

	store.ErrEmailAlreadyExists:    http.StatusBadRequest,
	store.ErrUsernameAlreadyExists: http.StatusBadRequest,
	store.ErrCategoryAlreadyExists: http.StatusBadRequest,
	store.ErrNoteTitleTaken:        http.StatusBadRequest,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrCategoryNotFound:      http.StatusNotFound,
	store.ErrNoteNotFound:          http.StatusNotFound,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
