// Package auth implements the bearer-token codec: issuing and verifying
// signed user-identity claims. Services stay ignorant of the signing
// mechanism; swapping the trust scheme only touches this package.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/todograph/todograph/internal/common"
)

// Claims carries the standard registered claims plus the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// Codec signs and verifies bearer tokens with an HS256 secret injected at
// construction. Only an exactly-zero validity issues tokens without an
// expiry claim; a negative validity produces already-expired tokens, so a
// misconfigured TTL never mints an eternal credential.
type Codec struct {
	secret   []byte
	validity time.Duration
}

func NewCodec(secret string, validity time.Duration) *Codec {
	return &Codec{secret: []byte(secret), validity: validity}
}

// Issue produces a signed token carrying userID.
func (c *Codec) Issue(userID string) (string, error) {
	claims := Claims{UserID: userID}
	if c.validity != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(c.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify validates the signature and claims of tokenString and returns the
// embedded user id. Tampered, malformed, or foreign-secret tokens yield
// common.ErrInvalidToken; expired ones yield common.ErrTokenExpired.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
