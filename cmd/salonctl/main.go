// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command salonctl is the terminal front-end of the salon CRM.
//
// # Startup Sequence
//
//  1. Initialize structured logger (stderr, warnings only unless DEBUG).
//  2. Load configuration from environment variables and ./.env.
//  3. Open the token store selected by TOKEN_STORE.
//  4. Run one command under a context cancelled on SIGINT/SIGTERM.
//
// Exit codes: 0 success, 1 failure, 2 login required, 64 usage, 130 interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/salonbook/internal/platform/config"
	"github.com/taibuivan/salonbook/internal/platform/constants"
	redisstore "github.com/taibuivan/salonbook/internal/platform/redis"
	"github.com/taibuivan/salonbook/internal/tokenstore"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *goredis.Client
	if cfg.TokenStore == config.StoreRedis {
		rdb, err = redisstore.Connect(ctx, cfg.RedisURL, redisstore.RoleClient, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Warn("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	store, err := tokenstore.Open(cfg, rdb, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	app := newApp(cfg.APIRoot(), cfg.RequestTimeout, store, log, os.Stdout, os.Stderr)
	return app.run(ctx, os.Args[1:])
}
