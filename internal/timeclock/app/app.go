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

	"github.com/prometheus/client_golang/prometheus"
	httpapi "github.com/smatehq/timeclock/internal/timeclock/http"
	"github.com/smatehq/timeclock/internal/timeclock/metrics"
	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/internal/timeclock/store"
	"github.com/smatehq/timeclock/internal/timeclock/store/drivers/sqlite"
	"github.com/smatehq/timeclock/pkg/jwtx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the timeclock service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	keys     *jwtx.KeySet
	verifier jwtx.Verifier
	registry *prometheus.Registry

	// Services
	identityService   *service.IdentityService
	locationService   *service.LocationService
	ledgerService     *service.LedgerService
	reportService     *service.ReportService
	keyRefreshService *service.KeyRefreshService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.New("TIMECLOCK_ISSUER_URL is required")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "timeclock",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initVerifier()
	app.initServices()
	app.initHTTP()

	if cfg.SeedLocations {
		ctx := slogx.WithContext(context.Background(), app.logger)
		if err := app.locationService.SeedDefault(ctx); err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to seed locations: %w", err)
		}
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start the JWKS refresher; /readyz stays degraded until the first
	// fetch lands.
	app.keyRefreshService.Start()

	app.logger.Info("timeclock service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down timeclock service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the JWKS refresher
	app.keyRefreshService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("timeclock service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
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

// initVerifier sets up RS256 verification against the provider's JWKS.
// Keys load asynchronously via the refresh service.
func (app *Application) initVerifier() {
	app.keys = jwtx.NewKeySet()
	app.verifier = jwtx.NewVerifierRS256(app.keys, app.cfg.IssuerURL, app.cfg.Audience)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.registry = prometheus.NewRegistry()
	collector := metrics.NewCollector(app.registry)

	app.identityService = &service.IdentityService{Store: app.db, Metrics: collector}
	app.locationService = &service.LocationService{Store: app.db}
	app.ledgerService = &service.LedgerService{Store: app.db, Metrics: collector}
	app.reportService = &service.ReportService{Store: app.db, Metrics: collector}

	app.keyRefreshService = service.NewKeyRefreshService(
		jwtx.NewJWKSClient(app.cfg.IssuerURL),
		app.keys,
		app.logger,
		app.cfg.JWKSRefreshInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.registry,
		app.logger,
	)

	// Wire services to router
	router.IdentityService = app.identityService
	router.LocationService = app.locationService
	router.LedgerService = app.ledgerService
	router.ReportService = app.reportService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
