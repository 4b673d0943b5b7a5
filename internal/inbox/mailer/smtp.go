package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/whisper/pkg/slogx"
)

// SMTPConfig holds the relay settings. From defaults to User.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string

	// FrontendURL is the base of the verification link.
	FrontendURL string
}

// SMTPMailer sends HTML mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, username, code string) error {
	logger := slogx.FromContext(ctx)

	body, err := renderVerification(verificationData{
		Username: username,
		Code:     code,
		Link:     m.cfg.FrontendURL + "/verify/" + url.PathEscape(username),
		Year:     time.Now().Year(),
	})
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	msg := buildMessage(m.cfg.From, to, "Verification Code", body)
	if err := m.send(net.JoinHostPort(m.cfg.Host, m.cfg.Port), m.auth(), m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("verification email sent", slog.String("to", to))
	return nil
}

func (m *SMTPMailer) auth() smtp.Auth {
	if m.cfg.User == "" {
		return nil
	}
	return smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
}

func buildMessage(from, to, subject, body string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.Bytes()
}

type verificationData struct {
	Username string
	Code     string
	Link     string
	Year     int
}

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html lang="en" dir="ltr">
<head>
    <meta charset="UTF-8">
    <title>Verification Code</title>
</head>
<body style="font-family: Roboto, Verdana, sans-serif;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; text-align: center;">
        <h2 style="color: #333333;">Hello {{.Username}},</h2>
        <p style="color: #666666; font-size: 14px;">Thank you for registering. Please use the following verification code to complete your registration:</p>
        <p style="font-size: 1.5em; font-weight: bold; color: #007bff; margin: 10px 0;">{{.Code}}</p>
        <p style="color: #666666; font-size: 14px;">If you did not request this code, please ignore this email. For your security, do not share this code with anyone.</p>
        <a href="{{.Link}}" style="display: inline-block; padding: 10px 20px; background-color: #007bff; color: #ffffff; text-decoration: none; border-radius: 5px;">Verify Here</a>
        <p style="color: #999999; font-size: 12px; margin-top: 20px;">&copy; {{.Year}} Whisper. All rights reserved.</p>
    </div>
</body>
</html>
`))

func renderVerification(d verificationData) (string, error) {
	var buf bytes.Buffer
	if err := verificationTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
