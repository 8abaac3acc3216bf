// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/salonbook/internal/platform/constants"
	redisstore "github.com/taibuivan/salonbook/internal/platform/redis"
)

// RedisStore keeps the token in Redis under a namespaced fixed key, with no
// expiry: the server decides when a token dies.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		key:    redisstore.Key(constants.RedisPrefixStorage, constants.TokenStorageKey),
		logger: logger.With(slog.String("store", "redis")),
	}
}

// Read returns the stored token. redis.Nil is an absent token, not a failure.
func (store *RedisStore) Read(ctx context.Context) (string, bool) {
	token, err := store.client.Get(ctx, store.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			store.logger.WarnContext(ctx, "token_store_read_failed", slog.Any("error", err))
		}
		return "", false
	}
	return token, token != ""
}

// Write stores token.
func (store *RedisStore) Write(ctx context.Context, token string) {
	if err := store.client.Set(ctx, store.key, token, 0).Err(); err != nil {
		store.logger.ErrorContext(ctx, "token_store_write_failed", slog.Any("error", err))
	}
}

// Clear deletes the key.
func (store *RedisStore) Clear(ctx context.Context) {
	if err := store.client.Del(ctx, store.key).Err(); err != nil {
		store.logger.ErrorContext(ctx, "token_store_clear_failed", slog.Any("error", err))
	}
}
