package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set carried by every issued bearer token.
//
// It embeds [jwt.RegisteredClaims] for the standard fields (sub, iss, iat,
// exp) and adds the username so that handlers can address the caller by name
// without a user lookup. The user id travels in the "sub" claim.
type Claims struct {
	jwt.RegisteredClaims

	// Username is the public name of the token's subject.
	Username string `json:"username"`
}

// Token wraps a signed JWT with the identity resolved from its claims.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
// UserID and Username are server-side caches of the respective claims,
// populated during generation or validation.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON because only the compact string form is meaningful
	// outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`

	// Username is the value of the custom "username" claim.
	Username string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
