package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Tokens is the access/refresh pair issued by the backend
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether no token is held
func (t Tokens) Empty() bool {
	return t.Access == "" && t.Refresh == ""
}

// Expired reads the exp claim without verifying the signature; the backend
// verifies tokens, the client only needs to know whether to refresh.
// Tokens that cannot be decoded, or carry no exp, count as expired.
func Expired(token string, now time.Time) bool {
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	return !claims.VerifyExpiresAt(now.Unix(), true)
}
