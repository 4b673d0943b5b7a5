package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/whisper/internal/inbox/http"
	"github.com/aussiebroadwan/whisper/internal/inbox/mailer"
	"github.com/aussiebroadwan/whisper/internal/inbox/service"
	"github.com/aussiebroadwan/whisper/internal/inbox/store"
	"github.com/aussiebroadwan/whisper/internal/inbox/store/drivers/postgres"
	"github.com/aussiebroadwan/whisper/internal/inbox/store/drivers/sqlite"
	"github.com/aussiebroadwan/whisper/internal/inbox/suggest"
	"github.com/aussiebroadwan/whisper/pkg/cryptox"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/jwtx"
	"github.com/aussiebroadwan/whisper/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the inbox service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	redis      *redis.Client // nil without INBOX_REDIS_URL

	inboxService        *service.InboxService
	sessionService      *service.SessionService
	accountService      *service.AccountService
	housekeepingService *service.HousekeepingService
	suggestService      *suggest.Service

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "inbox-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, err
	}

	if err := httpx.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	keyManager, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keyManager = keyManager

	app.initServices(ctx)
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("inbox service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server, stops housekeeping and closes the
// database and cache connections.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down inbox service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("inbox service stopped")
	return nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		if app.cfg.DatabaseURL == "" {
			return errors.New("INBOX_DATABASE_URL is required for the postgres driver")
		}
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	case "sqlite", "":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initServices(ctx context.Context) {
	app.inboxService = &service.InboxService{Store: app.db}

	app.sessionService = &service.SessionService{
		Store:  app.db,
		Keys:   app.keyManager,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}

	app.accountService = &service.AccountService{
		Store:   app.db,
		Mailer:  app.newMailer(),
		CodeTTL: app.cfg.VerifyCodeTTL,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.UnverifiedRetention,
	)

	app.suggestService = &suggest.Service{CacheTTL: app.cfg.SuggestCacheTTL}
	if app.cfg.GeminiAPIKey != "" {
		app.suggestService.Generator = suggest.NewGeminiGenerator(suggest.GeminiConfig{
			APIKey:  app.cfg.GeminiAPIKey,
			Model:   app.cfg.GeminiModel,
			BaseURL: app.cfg.GeminiBaseURL,
		})
	} else {
		app.logger.Warn("GEMINI_API_KEY not set, serving default suggestions")
	}

	if app.cfg.RedisURL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		client, err := suggest.NewRedisClient(pingCtx, app.cfg.RedisURL)
		if err != nil {
			// The cache is an optimisation; run without it.
			app.logger.Warn("suggestion cache unavailable", "error", err)
			return
		}
		app.redis = client
		app.suggestService.Cache = suggest.NewRedisCache(client, suggest.DefaultCacheKey)
	}
}

func (app *Application) newMailer() mailer.Mailer {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP_HOST not set, verification codes are logged instead of mailed")
		return mailer.LogMailer{}
	}

	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:        app.cfg.SMTPHost,
		Port:        app.cfg.SMTPPort,
		User:        app.cfg.SMTPUser,
		Password:    app.cfg.SMTPPassword,
		From:        app.cfg.SMTPFrom,
		FrontendURL: app.cfg.FrontendURL,
	})
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSOrigins,
	)

	router.InboxService = app.inboxService
	router.SessionService = app.sessionService
	router.AccountService = app.accountService
	router.SuggestService = app.suggestService
	if app.redis != nil {
		router.CachePing = func(r *http.Request) error {
			return app.redis.Ping(r.Context()).Err()
		}
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
