package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via the AuthService, and on success stores the resolved
// identity claims in the request context under [utils.UserIDCtxKey] and
// [utils.UsernameCtxKey] before delegating to the next handler.
//
// Rejection is two-tier:
//   - 401 Unauthorized when the header is absent, has no token segment, or
//     the token segment is empty — the caller is not authenticated at all.
//   - 403 Forbidden when a token is present but its signature, issuer, or
//     expiry does not validate — a deliberate distinction from the 401 cases.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("token rejected")
			utils.WriteError(w, err.Error(), http.StatusForbidden)
			return
		}

		// Store the resolved claims in the context so that downstream
		// handlers can retrieve them without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.UsernameCtxKey, token.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form:
//
//	Authorization: <scheme> <token>
//
// It returns [ErrInvalidAuthorizationHeader] when the header has fewer than
// two space-separated parts, and [ErrEmptyToken] when the token part is
// present but empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
