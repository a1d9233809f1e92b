// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Shortwave catalogue API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Seed the curated tag vocabulary.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/shortwave/internal/api"
	"github.com/taibuivan/shortwave/internal/core/film"
	"github.com/taibuivan/shortwave/internal/core/tag"
	"github.com/taibuivan/shortwave/internal/core/upload"
	"github.com/taibuivan/shortwave/internal/platform/config"
	"github.com/taibuivan/shortwave/internal/platform/constants"
	"github.com/taibuivan/shortwave/internal/platform/imagehost"
	"github.com/taibuivan/shortwave/internal/platform/migration"
	pgstore "github.com/taibuivan/shortwave/internal/platform/postgres"
	redisstore "github.com/taibuivan/shortwave/internal/platform/redis"
	"github.com/taibuivan/shortwave/internal/platform/sec"
	"github.com/taibuivan/shortwave/internal/users/auth"
)

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String(constants.FieldApp, constants.AppName))
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String(constants.FieldVersion, constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Tag vocabulary ─────────────────────────────────────────────────
	tagService := tag.NewService(tag.NewPostgresRepository(pool), cfg.TagVocabulary, log)
	must(log, tagService.Seed(startupCtx), "seed tag vocabulary")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	images, err := imagehost.NewImgbb(imagehost.Config{APIKey: cfg.ImgbbAPIKey, Endpoint: cfg.ImgbbEndpoint})
	must(log, err, "initialize image host")
	if cfg.ImgbbAPIKey == "" {
		log.Warn("image_host_disabled")
	}

	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewSessionRepository(rdb),
		jwtSvc,
		images,
		log,
	)

	filmService := film.NewService(
		film.NewPostgresRepository(pool),
		film.NewRedisSnapshotCache(rdb, cfg.CatalogCacheTTL),
		authService,
		log,
	)

	uploadService := upload.NewService(filmService, tagService, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Films:     film.NewHandler(filmService),
		Tags:      tag.NewHandler(tagService),
		Uploads:   upload.NewHandler(uploadService),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Only startup wiring uses it.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
