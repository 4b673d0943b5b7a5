package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/joho/godotenv"
)

type Config struct {
	Issuer         string        // Issuer claim for session tokens (default: whisper)
	SessionTTL     time.Duration // Session token lifetime (default: 24h)
	SigningKeyFile string        // Optional: PEM key file; unset means ephemeral keys
	NumKeys        int           // Ephemeral signing keys (default: 3, max: 10)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite file path (default: ./inbox.db)
	DatabaseURL    string // Postgres DSN, required when the driver is postgres
	PepperFile     string // Pepper for password hashing (default: ./pepper)

	VerifyCodeTTL        time.Duration // Lifetime of a verification code (default: 1h)
	UnverifiedRetention  time.Duration // Grace before expired sign-ups are purged (default: 24h)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	CORSOrigins    []string // Allowed browser origins (default: *)
	TrustedProxies []string // Proxies whose X-Forwarded-For is believed (default: none)
	FrontendURL    string   // Base of the verification link in e-mails

	SMTPHost     string // Optional: unset logs codes instead of mailing them
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	GeminiAPIKey    string // Optional: unset serves the default questions
	GeminiModel     string
	GeminiBaseURL   string
	RedisURL        string        // Optional: suggestion cache
	SuggestCacheTTL time.Duration // Default: 30s

	Env                 string        // dev, staging, prod (default: dev)
	LogLevel            string        // debug, info, warn, error (default: info)
	LogFormat           string        // json, text (default: json)
	Port                int           // HTTP port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment, after loading a .env file if present.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Issuer:         getEnvOrDefault("INBOX_ISSUER", "whisper"),
		SessionTTL:     getEnvDurationOrDefault("INBOX_SESSION_TTL", 24*time.Hour),
		SigningKeyFile: os.Getenv("INBOX_SIGNING_KEY_FILE"),
		NumKeys:        getEnvIntOrDefault("INBOX_NUM_KEYS", 3),

		DatabaseDriver: getEnvOrDefault("INBOX_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("INBOX_DATABASE_FILE", "inbox.db"),
		DatabaseURL:    os.Getenv("INBOX_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("INBOX_PEPPER_FILE", "pepper"),

		VerifyCodeTTL:        getEnvDurationOrDefault("INBOX_VERIFY_CODE_TTL", time.Hour),
		UnverifiedRetention:  getEnvDurationOrDefault("INBOX_UNVERIFIED_RETENTION", 24*time.Hour),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),

		CORSOrigins:    httpx.SplitList(os.Getenv("INBOX_CORS_ORIGINS")),
		TrustedProxies: httpx.SplitList(os.Getenv("INBOX_TRUSTED_PROXIES")),
		FrontendURL:    getEnvOrDefault("INBOX_FRONTEND_URL", "http://localhost:3000"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL:   os.Getenv("GEMINI_BASE_URL"),
		RedisURL:        os.Getenv("INBOX_REDIS_URL"),
		SuggestCacheTTL: getEnvDurationOrDefault("INBOX_SUGGEST_CACHE_TTL", 30*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	httpx.LoadRateLimitsFromEnv()

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
