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

	httpapi "github.com/taskdeck/taskdeck/internal/http"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/store/drivers/sqlite"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the taskdeck service with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenService  *service.TokenService
	authService   *service.AuthService
	orgService    *service.OrgService
	inviteService *service.InviteService
	taskService   *service.TaskService
	userService   *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies
// initialized.
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("TASKDECK_JWT_SECRET must be set")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskdeck",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("taskdeck starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskdeck...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taskdeck stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
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

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Secret: []byte(app.cfg.JWTSecret),
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}

	app.authService = &service.AuthService{Store: app.db}
	app.orgService = &service.OrgService{Store: app.db}
	app.inviteService = &service.InviteService{Store: app.db}
	app.taskService = &service.TaskService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	app.router = &httpapi.Router{
		Auth:         app.authService,
		Orgs:         app.orgService,
		Invites:      app.inviteService,
		Tasks:        app.taskService,
		Users:        app.userService,
		Tokens:       app.tokenService,
		Store:        app.db,
		FrontendURL:  app.cfg.FrontendURL,
		CookieSecure: app.cfg.CookieSecure,
		Version:      BuildVersion,
	}

	handler := slogx.HTTPMiddleware(app.logger)(app.router.Handler())

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
