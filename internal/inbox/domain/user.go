package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string // stored lower-cased
	PasswordHash string // argon2id PHC string

	Verified bool
	// Fingerprint of the pending e-mail code; empty once verified.
	VerifyCodeHash      string
	VerifyCodeExpiresAt *time.Time

	AcceptingMessages bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CodeExpired reports whether the pending verification code has lapsed at now.
func (u User) CodeExpired(now time.Time) bool {
	return u.VerifyCodeExpiresAt == nil || !now.Before(*u.VerifyCodeExpiresAt)
}
