// Package mailer delivers account e-mail.
package mailer

import "context"

// Mailer sends the verification code issued at sign-up.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, code string) error
}
