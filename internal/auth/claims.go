package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are carried by every access token. Subject is the account email and
// ID is a unique token id used for revocation.
type Claims struct {
	jwt.RegisteredClaims
}

// ExpiresAtTime returns the expiry, or the zero time if the token has none.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
