package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/adapters/directions"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/api"
	"trip-route-service/internal/config"
	"trip-route-service/internal/platform/db"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"googlemaps.github.io/maps"
)

// main is the application composition root.
// It wires concrete adapters (trip file, directions provider, route cache)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	trips, err := repositories.LoadTripsFromFile(cfg.TripsPath)
	if err != nil {
		return err
	}
	logger.Info("trips loaded", "path", cfg.TripsPath, "count", len(trips))
	repo := repositories.NewMemoryTripRepository(trips)

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	// Route results are cached persistently when a database is configured.
	routeCache, closeCache, err := openRouteCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()
	if routeCache != nil {
		provider = directions.NewCachingProvider(provider, routeCache, logger)
	}

	views := services.NewViewRegistry(services.TripViewConfig{
		Trips:       repo,
		Provider:    provider,
		Logger:      logger,
		Concurrency: cfg.ChunkConcurrency,
	})
	defer views.Close()

	router := api.NewRouter(api.RouterConfig{
		Trips:       repo,
		Views:       views,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Write timeout covers select requests that wait on the provider.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "provider", cfg.DirectionsProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newProvider(cfg config.Config) (ports.DirectionsProvider, error) {
	switch cfg.DirectionsProvider {
	case config.ProviderORS:
		opts := []directions.ORSOption{directions.WithORSRateLimit(cfg.ProviderQPS)}
		if cfg.ORSBaseURL != "" {
			opts = append(opts, directions.WithORSBaseURL(cfg.ORSBaseURL))
		}
		return directions.NewORSDirectionsProvider(cfg.ORSAPIKey, opts...)
	default:
		var opts []maps.ClientOption
		if cfg.ProviderQPS > 0 {
			opts = append(opts, maps.WithRateLimit(max(1, int(cfg.ProviderQPS))))
		}
		return directions.NewGoogleDirectionsProvider(cfg.GoogleMapsAPIKey, opts...)
	}
}

// openRouteCache returns nil when neither DATABASE_URL nor DB_PATH is set.
func openRouteCache(cfg config.Config) (ports.RouteCache, func(), error) {
	var (
		conn    *sql.DB
		dialect goose.Dialect
		err     error
	)

	switch {
	case cfg.DatabaseURL != "":
		conn, err = db.Open(cfg.DatabaseURL)
		dialect = goose.DialectPostgres
	case cfg.DBPath != "":
		conn, err = db.OpenSQLite(cfg.DBPath)
		dialect = goose.DialectSQLite3
	default:
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	// Apply the schema on startup for local runs.
	if err := db.Migrate(context.Background(), conn, dialect); err != nil {
		conn.Close()
		return nil, nil, err
	}

	closeFn := func() { conn.Close() }
	if dialect == goose.DialectPostgres {
		return cache.NewSQLRouteCache(conn), closeFn, nil
	}
	return cache.NewSqliteRouteCache(conn), closeFn, nil
}
