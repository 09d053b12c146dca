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

	httpapi "github.com/linguastream/linguastream/internal/audio/http"
	"github.com/linguastream/linguastream/internal/audio/service"
	"github.com/linguastream/linguastream/internal/audio/store"
	"github.com/linguastream/linguastream/internal/audio/store/drivers/sqlite"
	"github.com/linguastream/linguastream/internal/audio/token"
	"github.com/linguastream/linguastream/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the audio service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	codec     *token.Codec
	resolver  *service.MediaResolver
	cache     *service.TranscodeCache
	estimator *service.LRUBandwidthEstimator

	// Services
	trackService        *service.TrackService
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
			Service: "audio-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.TokenSecret == "" {
		return nil, errors.New("AUDIO_TOKEN_SECRET must be set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("AUDIO_SESSION_SECRET must be set")
	}

	codec, err := token.NewCodec([]byte(cfg.TokenSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initMedia(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("audio service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

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
	app.logger.Info("shutting down audio service...")

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

	app.logger.Info("audio service stopped")
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

// initMedia prepares the media roots, transcode cache and bandwidth
// estimator.
func (app *Application) initMedia() error {
	for _, dir := range []string{app.cfg.SystemMediaDir, app.cfg.CustomMediaDir, app.cfg.TranscodeDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create media dir %s: %w", dir, err)
		}
	}

	app.resolver = &service.MediaResolver{
		SystemDir: app.cfg.SystemMediaDir,
		CustomDir: app.cfg.CustomMediaDir,
	}

	var enc service.Encoder
	if app.cfg.FFmpegPath == "off" {
		app.logger.Warn("transcoding disabled, streaming source quality only")
		enc = service.CopyEncoder{}
	} else {
		enc = &service.FFmpegEncoder{Binary: app.cfg.FFmpegPath}
	}
	app.cache = service.NewTranscodeCache(app.cfg.TranscodeDir, enc)

	estimator, err := service.NewLRUBandwidthEstimator(app.cfg.BandwidthUsers)
	if err != nil {
		return fmt.Errorf("failed to initialize bandwidth estimator: %w", err)
	}
	app.estimator = estimator

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.trackService = &service.TrackService{
		Store:    app.db,
		Resolver: app.resolver,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.cfg.TranscodeDir,
		app.cfg.CacheMaxAge,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		[]byte(app.cfg.SessionSecret),
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.TrackService = app.trackService
	router.Resolver = app.resolver
	router.Cache = app.cache
	router.Estimator = app.estimator
	router.AllowedReferers = app.cfg.AllowedReferers
	router.ApplyRoutes()

	app.router = router

	// Streams can legitimately run for minutes, so no write timeout.
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
