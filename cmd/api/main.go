// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the O Quarto Selo HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open storage: PostgreSQL + Redis, or the in-memory store.
//  4. Run database migrations (postgres driver only, idempotent).
//  5. Open object storage when a bucket is configured.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/quartoselo/internal/api"
	"github.com/taibuivan/quartoselo/internal/core/archive"
	"github.com/taibuivan/quartoselo/internal/core/comment"
	"github.com/taibuivan/quartoselo/internal/core/newsletter"
	"github.com/taibuivan/quartoselo/internal/core/tale"
	"github.com/taibuivan/quartoselo/internal/memdb"
	"github.com/taibuivan/quartoselo/internal/platform/config"
	"github.com/taibuivan/quartoselo/internal/platform/constants"
	"github.com/taibuivan/quartoselo/internal/platform/migration"
	pgstore "github.com/taibuivan/quartoselo/internal/platform/postgres"
	redisstore "github.com/taibuivan/quartoselo/internal/platform/redis"
	"github.com/taibuivan/quartoselo/internal/platform/sec"
	"github.com/taibuivan/quartoselo/internal/platform/storage"
	"github.com/taibuivan/quartoselo/internal/users/auth"
	"github.com/taibuivan/quartoselo/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Cancelled on return; stops the rate limiter janitor.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ──────────────────────────────────────────────────────────
	var deps api.Dependencies
	var cleanup func()
	if cfg.UsesMemory() {
		deps, cleanup = openMemory(log)
	} else {
		deps, cleanup = openPostgres(startupCtx, cfg, log)
	}
	defer cleanup()

	// ── 4. Object Storage ─────────────────────────────────────────────────
	if cfg.ObjectStorageEnabled() {
		objects, err := storage.NewS3Store(startupCtx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, log)
		must(log, err, "connect to object storage")
		deps.Objects = objects
	} else if deps.Objects == nil {
		log.Warn("object_storage_disabled", slog.String("effect", "archive attachments are refused"))
	}

	// ── 5. Tokens & Handlers ──────────────────────────────────────────────
	tokens, err := newTokenService(cfg)
	must(log, err, "initialize jwt service")
	deps.Tokens = tokens
	deps.SecureCookies = !cfg.IsDevelopment()

	handlers := api.NewHandlers(deps, log)
	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)
	return log
}

// openPostgres connects PostgreSQL and Redis, migrates, and builds the
// repositories. The returned func closes both connections.
func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (api.Dependencies, func()) {
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
	must(log, err, "connect to redis")

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	deps := api.Dependencies{
		Tales:      tale.NewPostgresRepository(pool),
		Comments:   comment.NewPostgresRepository(pool),
		Profiles:   profile.NewPostgresRepository(pool),
		Accounts:   auth.NewAccountRepository(pool),
		Sessions:   auth.NewSessionRepository(rdb),
		Archive:    archive.NewPostgresRepository(pool),
		Newsletter: newsletter.NewPostgresRepository(pool),
		HealthChecks: []api.HealthCheck{
			{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
			{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
		},
	}
	if cfg.TaleCacheTTL > 0 {
		deps.TaleCache = tale.NewRedisCache(rdb, cfg.TaleCacheTTL)
	}

	return deps, func() {
		log.Info("closing_redis_client")
		if err := rdb.Close(); err != nil {
			log.Error("redis_close_error", slog.Any("error", err))
		}
		log.Info("closing_postgres_pool")
		pool.Close()
	}
}

// openMemory builds every repository on one in-process store. Attachments go
// to an in-process object store unless a bucket is configured.
func openMemory(log *slog.Logger) (api.Dependencies, func()) {
	log.Warn("memory_storage_enabled", slog.String("effect", "all data is lost on exit"))
	store := memdb.New()

	return api.Dependencies{
		Tales:      store.Tales(),
		Comments:   store.Comments(),
		Profiles:   store.Profiles(),
		Accounts:   store.Accounts(),
		Sessions:   store.Sessions(),
		Archive:    store.Archive(),
		Objects:    storage.NewMemoryStore(),
		Newsletter: store.Newsletter(),
	}, func() {}
}

// newTokenService loads the RSA key pair, or generates a throwaway key when
// none is configured (memory driver only; config validation enforces this).
func newTokenService(cfg *config.Config) (*sec.TokenService, error) {
	if cfg.JWTPrivKeyPath == "" {
		return sec.NewEphemeralTokenService(constants.AuthIssuer)
	}
	return sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
