// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command stubapi is an in-memory development server for the salon API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis when REDIS_URL is set (revocation list).
//  4. Seed the in-memory data.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/salonbook/internal/api"
	"github.com/taibuivan/salonbook/internal/platform/config"
	"github.com/taibuivan/salonbook/internal/platform/constants"
	redisstore "github.com/taibuivan/salonbook/internal/platform/redis"
	"github.com/taibuivan/salonbook/internal/platform/sec"
	"github.com/taibuivan/salonbook/internal/stubapi"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Salonbook] stub_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadStub()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.Port),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Revocation list ────────────────────────────────────────────────
	var revocations stubapi.Revocations = stubapi.NewMemoryRevocations()
	healthDeps := api.HealthDependencies{}

	if cfg.RedisURL != "" {
		rdb, err := redisstore.Connect(startupCtx, cfg.RedisURL, redisstore.RoleServer, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		revocations = stubapi.NewRedisRevocations(rdb)
		healthDeps.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	// ── 4. Data & tokens ──────────────────────────────────────────────────
	data, err := stubapi.NewData(cfg.SeedEmail, cfg.SeedPassword, time.Now)
	must(log, err, "seed data")

	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	log.Info("seed_account_ready", slog.String("email", cfg.SeedEmail))

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Stub:      stubapi.NewHandler(data, tokens, revocations, stubapi.NewOutbox(), cfg.TokenTTL),
	}

	server := api.NewServer(rootCtx, cfg, log, stubapi.NewVerifier(tokens, revocations), handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName+"-stub"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
