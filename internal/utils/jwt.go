package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mkarev/go-note-keeper/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for the given user.
//
// The token carries the standard claims
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user id
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// plus a custom "username" claim, so that the identity {id, username} can be
// resolved from the token alone on every request.
//
// All parameters are required; an error is returned when any of them are
// empty or zero, or when signing fails.
func GenerateJWTToken(issuer, userID, username string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID, Username: username}, nil
}

// ValidateAndParseJWTToken validates the given JWT string and extracts its
// identity claims.
//
// Validation covers the HMAC signature, the issuer claim, and the expiry
// claim. On success the returned token has UserID and Username populated
// from the "sub" and "username" claims.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userID, err := claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userID == "" {
		return models.Token{}, errors.New("empty subject in token")
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID, Username: claims.Username}, nil
}
