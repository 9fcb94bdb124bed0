package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/event"
	httpapi "github.com/wattlehq/gatepass/internal/invitation/http"
	"github.com/wattlehq/gatepass/internal/invitation/service"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/internal/invitation/store/drivers/sqlite"
	"github.com/wattlehq/gatepass/internal/invitation/token"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the invitation service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	events *event.Bus
	tokens token.Generator

	// Services
	registryService     *service.RegistryService
	ledgerService       *service.LedgerService
	redemptionService   *service.RedemptionService
	registrationService *service.RegistrationService
	workflowService     *service.WorkflowService
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
			Service: "invitation-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	tokens, err := token.New(cfg.TokenMode, cfg.JWTSecret, "gatepass")
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token generator: %w", err)
	}
	app.tokens = tokens

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("invitation service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down invitation service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("invitation service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.events = event.NewBus()

	app.registryService = &service.RegistryService{
		Store:               app.db,
		Tokens:              app.tokens,
		Events:              app.events,
		BaseURL:             app.cfg.BaseURL,
		DefaultDurationDays: app.cfg.DefaultDurationDays,
		DefaultGroupNames:   app.cfg.DefaultGroupNames,
	}

	app.ledgerService = &service.LedgerService{
		Store:             app.db,
		DefaultAllocation: app.cfg.DefaultAllocation,
	}

	app.redemptionService = &service.RedemptionService{
		Store:  app.db,
		Ledger: app.ledgerService,
		Tokens: app.tokens,
		Events: app.events,
	}

	app.registrationService = &service.RegistrationService{
		Store:      app.db,
		Registry:   app.registryService,
		Redemption: app.redemptionService,
		Ledger:     app.ledgerService,
	}

	app.workflowService = &service.WorkflowService{
		Store:    app.db,
		Registry: app.registryService,
		Ledger:   app.ledgerService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.registryService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.AdminToken,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.WorkflowService = app.workflowService
	router.RegistryService = app.registryService
	router.RegistrationService = app.registrationService
	router.LedgerService = app.ledgerService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
