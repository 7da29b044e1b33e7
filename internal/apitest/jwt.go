package apitest

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errTokenExpired = errors.New("token expired")

// claims mirrors the service's access token payload: sub, user_id and exp.
type claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

func (s *Server) issueToken(username string, userID int) (string, error) {
	return s.IssueToken(username, userID, s.now().Add(s.ttl))
}

// IssueToken signs a token for username with the given expiry. Tests use it
// to build expired or otherwise unusual tokens.
func (s *Server) IssueToken(username string, userID int, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*claims, error) {
	c := &claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(raw, c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, errTokenExpired
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
