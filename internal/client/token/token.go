// Package token reads the claims of an access token on the client side.
//
// Signatures are NOT verified here: the client has no key and only uses the
// claims for display and for noticing that a session has run out. The
// service remains the authority on whether a token is valid.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned for opaque tokens that cannot be decoded.
var ErrNotJWT = errors.New("token is not a JWT")

// Claims are the fields the service puts into its access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID models.ID `json:"user_id"`
}

// Info is the decoded, display-ready view of a token.
type Info struct {
	Subject   string
	UserID    models.ID
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry that is not after now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect decodes raw without verifying its signature.
func Inspect(raw string) (Info, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	info := Info{Subject: claims.Subject, UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
