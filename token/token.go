// Package token decodes the bearer credential issued by the PowerGym
// backend. The client never verifies the signature — that is the server's
// job on every request — it only reads the embedded claims for role
// resolution and expiry discovery, so parsing is unverified by design of
// the wire contract.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned by [Decode] when the credential is not a
// three-part token with a JSON payload.
var ErrMalformedToken = errors.New("token: malformed bearer credential")

// Claims is the payload embedded in the bearer credential. Field tags match
// the backend wire format.
type Claims struct {
	ID      string `json:"id"`
	UserRef string `json:"user_id"`
	Email   string `json:"correo"`
	Role    string `json:"rol"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Decode parses the middle segment of the raw credential as base64-encoded
// JSON claims. A malformed token returns nil and an error wrapping
// [ErrMalformedToken]; callers treat that as "no usable data", never as a
// fatal condition.
//
// Decode may return an error when input validation, dependency calls, or security checks fail.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Decode(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}
	return claims, nil
}

// Expired reports whether the claims' exp is at or before now. Claims with
// no exp are treated as expired.
//
// Expired may return an error when input validation, dependency calls, or security checks fail.
// Expired does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.Time.After(now)
}
