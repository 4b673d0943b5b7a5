package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a signed-in session stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Claims carry the session identity. Verified and AcceptingMessages are a
// snapshot taken at sign-in; services re-read the store when they matter.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID, one per sign-in.
	SID string `json:"sid,omitempty"`

	Username          string `json:"username,omitempty"`
	Verified          bool   `json:"verified"`
	AcceptingMessages bool   `json:"accepting_messages"`
}

// SessionParams describes the token to mint in NewSessionClaims.
type SessionParams struct {
	Subject           string
	SID               string
	Username          string
	Verified          bool
	AcceptingMessages bool
	Issuer            string
	TTL               time.Duration
}

// NewSessionClaims builds claims for a freshly authenticated user.
func NewSessionClaims(p SessionParams, now time.Time) Claims {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		SID:               p.SID,
		Username:          p.Username,
		Verified:          p.Verified,
		AcceptingMessages: p.AcceptingMessages,
	}
}

func newJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer is a no-op when expected is empty.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry checks exp and nbf against now, allowing leeway either way.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
