package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/mailer"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"INBOX_ISSUER", "INBOX_DATABASE_DRIVER", "PORT", "INBOX_VERIFY_CODE_TTL", "INBOX_CORS_ORIGINS", "INBOX_TRUSTED_PROXIES", "SMTP_HOST", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "whisper", cfg.Issuer)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, time.Hour, cfg.VerifyCodeTTL)
	require.Equal(t, 24*time.Hour, cfg.UnverifiedRetention)
	require.Equal(t, 30*time.Second, cfg.SuggestCacheTTL)
	require.Empty(t, cfg.CORSOrigins)
	require.Empty(t, cfg.TrustedProxies)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("INBOX_ISSUER", "whisper-staging")
	t.Setenv("PORT", "9090")
	t.Setenv("INBOX_VERIFY_CODE_TTL", "15")
	t.Setenv("INBOX_SESSION_TTL", "2h")
	t.Setenv("INBOX_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("INBOX_TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")
	t.Setenv("HOUSEKEEPING_INTERVAL", "not-a-duration")

	cfg := LoadConfig()
	require.Equal(t, "whisper-staging", cfg.Issuer)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.VerifyCodeTTL)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestNewApplication(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Issuer:               "whisper-test",
		NumKeys:              1,
		SigningKeyFile:       filepath.Join(dir, "signing.pem"),
		DatabaseDriver:       "sqlite",
		DatabaseFile:         filepath.Join(dir, "inbox.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		HousekeepingInterval: time.Hour,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
	}

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	require.IsType(t, mailer.LogMailer{}, app.accountService.Mailer)
	require.Nil(t, app.suggestService.Generator)
	require.FileExists(t, cfg.SigningKeyFile)
	require.FileExists(t, cfg.PepperFile)

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApplicationRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	_, err := New(Config{
		Issuer:         "whisper-test",
		DatabaseDriver: "mysql",
		PepperFile:     filepath.Join(dir, "pepper"),
		LogLevel:       "error",
	})
	require.ErrorContains(t, err, "unknown database driver")
}

func TestNewApplicationRejectsBadTrustedProxy(t *testing.T) {
	dir := t.TempDir()
	_, err := New(Config{
		Issuer:         "whisper-test",
		DatabaseDriver: "sqlite",
		DatabaseFile:   filepath.Join(dir, "inbox.db"),
		PepperFile:     filepath.Join(dir, "pepper"),
		TrustedProxies: []string{"proxy.internal"},
		LogLevel:       "error",
	})
	require.ErrorContains(t, err, "trusted proxy")
}
