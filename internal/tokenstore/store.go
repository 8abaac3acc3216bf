// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tokenstore persists the single bearer token of the client.

It is the only owner of the token: other components read it on every call and
never keep a copy across calls.

# Contract

  - Read returns the stored token and true, or "" and false when absent.
  - Write replaces the stored token.
  - Clear removes it.

None of the operations return an error. A failing backend is logged and
treated as an absent token (Read) or a no-op (Write, Clear), so a broken disk
or Redis degrades into "logged out" rather than a crash.
*/
package tokenstore

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/salonbook/internal/platform/config"
)

// Store is the single-slot bearer token cell.
type Store interface {
	Read(ctx context.Context) (string, bool)
	Write(ctx context.Context, token string)
	Clear(ctx context.Context)
}

// Open selects the backend named by cfg.TokenStore. rdb is only used for the
// Redis backend and may be nil otherwise.
func Open(cfg *config.Config, rdb *goredis.Client, logger *slog.Logger) (Store, error) {
	switch cfg.TokenStore {
	case config.StoreFile:
		return NewFileStore(cfg.TokenFile, logger), nil
	case config.StoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("tokenstore: redis backend requires a client")
		}
		return NewRedisStore(rdb, logger), nil
	case config.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("tokenstore: unknown backend %q", cfg.TokenStore)
	}
}
