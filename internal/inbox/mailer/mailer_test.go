package mailer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"testing"

	"github.com/aussiebroadwan/whisper/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = LogMailer{}
)

func TestSMTPMailerSendVerification(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{
		Host:        "smtp.example.com",
		User:        "noreply@example.com",
		Password:    "secret",
		FrontendURL: "https://whisper.example.com/",
	})

	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  []byte
	)
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, m.SendVerification(context.Background(), "fox@example.com", "quietfox", "123456"))
	require.Equal(t, "smtp.example.com:587", gotAddr)
	require.Equal(t, "noreply@example.com", gotFrom)
	require.Equal(t, []string{"fox@example.com"}, gotTo)

	body := string(gotMsg)
	require.Contains(t, body, "To: fox@example.com\r\n")
	require.Contains(t, body, "Subject: Verification Code\r\n")
	require.Contains(t, body, "Hello quietfox,")
	require.Contains(t, body, "123456")
	require.Contains(t, body, `href="https://whisper.example.com/verify/quietfox"`)
}

func TestSMTPMailerEscapesUsername(t *testing.T) {
	out, err := renderVerification(verificationData{Username: "<b>x</b>", Code: "000000"})
	require.NoError(t, err)
	require.NotContains(t, out, "<b>x</b>")
}

func TestSMTPMailerSendError(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: "2525"})
	boom := errors.New("connection refused")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := m.SendVerification(context.Background(), "fox@example.com", "quietfox", "123456")
	require.ErrorIs(t, err, boom)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := slogx.WithContext(context.Background(), logger)

	require.NoError(t, LogMailer{}.SendVerification(ctx, "fox@example.com", "quietfox", "654321"))
	require.Contains(t, buf.String(), `"verification_code":"654321"`)
	require.Contains(t, buf.String(), `"username":"quietfox"`)
}
