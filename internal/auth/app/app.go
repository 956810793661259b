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

	"github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/signin/internal/auth/http"
	"github.com/aussiebroadwan/signin/internal/auth/mail"
	"github.com/aussiebroadwan/signin/internal/auth/otp"
	"github.com/aussiebroadwan/signin/internal/auth/service"
	"github.com/aussiebroadwan/signin/internal/auth/store"
	"github.com/aussiebroadwan/signin/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/signin/pkg/cryptox"
	"github.com/aussiebroadwan/signin/pkg/httpx"
	"github.com/aussiebroadwan/signin/pkg/jwtx"
	"github.com/aussiebroadwan/signin/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	devFromEmail = "no-reply@localhost"
)

// Application encapsulates the sign-in service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	codes     otp.CodeStore
	passwords *cryptox.PasswordHasher
	signer    *jwtx.Signer
	verifier  *jwtx.Verifier
	mailer    *mail.Mailer

	// Services
	sessionService      *service.SessionService
	loginService        *service.LoginService
	accountService      *service.AccountService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "signin-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initDependencies(); err != nil {
		_ = app.closeStores()
		return nil, err
	}

	app.initServices()

	if err := app.seed(context.Background()); err != nil {
		_ = app.closeStores()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("sign-in service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"otp_store", app.cfg.OTP.Store,
	)

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
			_ = app.closeStores()
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

// Shutdown drains HTTP traffic, stops housekeeping, then closes the code
// store and the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down sign-in service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("sign-in service stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.codes != nil {
		if err := app.codes.Close(); err != nil {
			app.logger.Error("error closing code store", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.Auth.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initDependencies() error {
	var err error

	if app.passwords, err = InitPasswordHasher(app.cfg.Auth); err != nil {
		return err
	}
	if app.signer, app.verifier, err = InitSessionKeys(app.cfg.Auth, app.logger); err != nil {
		return err
	}
	if app.codes, err = app.newCodeStore(); err != nil {
		return err
	}
	if app.mailer, err = app.newMailer(); err != nil {
		return err
	}
	return nil
}

func (app *Application) newCodeStore() (otp.CodeStore, error) {
	if app.cfg.OTP.Store != OTPStoreRedis {
		return otp.NewMemoryStore(app.cfg.OTP.TTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.Redis.Addr,
		Password: app.cfg.Redis.Password,
		DB:       app.cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.Redis.Addr, err)
	}

	app.logger.Info("using redis code store", "addr", app.cfg.Redis.Addr)
	return otp.NewRedisStore(client, app.cfg.OTP.TTL), nil
}

func (app *Application) newMailer() (*mail.Mailer, error) {
	opts := mail.Options{
		FromName:  app.cfg.SMTP.FromName,
		FromEmail: app.cfg.SMTP.FromEmail,
		Timeout:   app.cfg.SMTP.SendTimeout,
		CodeTTL:   app.cfg.OTP.TTL,
	}

	if app.cfg.SMTP.Host == "" {
		// Validate only lets this through in dev.
		app.logger.Warn("SMTP_HOST not set; sign-in codes will be written to the log")
		if opts.FromEmail == "" {
			opts.FromEmail = devFromEmail
		}
		return mail.NewMailer(mail.LogSender{Logger: app.logger}, opts), nil
	}

	client, err := mail.NewSMTPClient(mail.SMTPConfig{
		Host:      app.cfg.SMTP.Host,
		Port:      app.cfg.SMTP.Port,
		Username:  app.cfg.SMTP.Username,
		Password:  app.cfg.SMTP.Password,
		TLSPolicy: app.cfg.SMTP.TLSPolicy,
		Timeout:   app.cfg.SMTP.SendTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure SMTP: %w", err)
	}
	return mail.NewMailer(client, opts), nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:    app.db,
		Signer:   app.signer,
		Verifier: app.verifier,
		Issuer:   app.cfg.Auth.Issuer,
		TTL:      app.cfg.Auth.SessionTTL,
	}
	app.loginService = &service.LoginService{
		Store:     app.db,
		Passwords: app.passwords,
		Codes:     app.codes,
		Mailer:    app.mailer,
		Sessions:  app.sessionService,
	}
	app.accountService = &service.AccountService{Store: app.db, Codes: app.codes}
	app.bootstrapService = &service.BootstrapService{
		Store:     app.db,
		Passwords: app.passwords,
		Logger:    app.logger,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.codes,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// seed creates the configured account when the database has none.
func (app *Application) seed(ctx context.Context) error {
	if app.cfg.Bootstrap.Email == "" {
		return nil
	}

	_, err := app.bootstrapService.Seed(ctx, service.SeedAccount{
		Email:    app.cfg.Bootstrap.Email,
		Password: app.cfg.Bootstrap.Password,
		UserName: app.cfg.Bootstrap.UserName,
	})
	if errors.Is(err, service.ErrBootstrapAlready) {
		app.logger.Debug("users exist; skipping seed account")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed account: %w", err)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.codes, app.logger)
	router.LoginService = app.loginService
	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.Cookie = httpx.CookieConfig{
		Name:   app.cfg.Auth.CookieName,
		Secure: app.cfg.Auth.CookieSecure,
	}
	router.EnableSwagger = app.cfg.IsDev()
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
