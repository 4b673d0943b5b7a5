package mailer

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/whisper/pkg/slogx"
)

// LogMailer writes verification codes to the log instead of sending them.
// Development and end-to-end tests read the code from the
// verification_code attribute.
type LogMailer struct{}

func (LogMailer) SendVerification(ctx context.Context, to, username, code string) error {
	slogx.FromContext(ctx).Info("verification email",
		slog.String("to", to),
		slog.String("username", username),
		slog.String("verification_code", code),
	)
	return nil
}
