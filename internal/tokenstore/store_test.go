// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/salonbook/internal/platform/config"
	"github.com/taibuivan/salonbook/internal/tokenstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newRedisStore runs an in-process Redis for the lifetime of the test.
func newRedisStore(t *testing.T) (*tokenstore.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return tokenstore.NewRedisStore(client, discardLogger()), server
}

// backends returns one fresh instance of every backend.
func backends(t *testing.T) map[string]tokenstore.Store {
	t.Helper()
	dir := t.TempDir()
	redisStore, _ := newRedisStore(t)
	return map[string]tokenstore.Store{
		"memory": tokenstore.NewMemoryStore(),
		"file":   tokenstore.NewFileStore(filepath.Join(dir, "nested", "storage.json"), discardLogger()),
		"redis":  redisStore,
	}
}

/*
TestStore_WriteThenRead verifies persistence idempotence across repeated writes.
*/
func TestStore_WriteThenRead(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := store.Read(ctx)
			assert.False(t, ok)

			for _, token := range []string{"tok123", "1|abcdef", "tok123"} {
				store.Write(ctx, token)

				got, ok := store.Read(ctx)
				require.True(t, ok)
				assert.Equal(t, token, got)

				got, ok = store.Read(ctx)
				require.True(t, ok)
				assert.Equal(t, token, got)
			}
		})
	}
}

/*
TestStore_ClearRemovesToken verifies absent-value after clear, whatever came before.
*/
func TestStore_ClearRemovesToken(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store.Clear(ctx)
			_, ok := store.Read(ctx)
			assert.False(t, ok)

			store.Write(ctx, "first")
			store.Write(ctx, "second")
			store.Clear(ctx)

			got, ok := store.Read(ctx)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

/*
TestStore_EmptyTokenIsAbsent keeps every backend agreeing on an empty write.
*/
func TestStore_EmptyTokenIsAbsent(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store.Write(ctx, "tok123")
			store.Write(ctx, "")

			got, ok := store.Read(ctx)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

/*
TestRedisStore_Key stores the token under the namespaced fixed key.
*/
func TestRedisStore_Key(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisStore(t)

	store.Write(ctx, "tok123")

	value, err := server.Get("salonbook:storage:auth_token")
	require.NoError(t, err)
	assert.Equal(t, "tok123", value)
	assert.Equal(t, []string{"salonbook:storage:auth_token"}, server.Keys())

	store.Clear(ctx)
	assert.False(t, server.Exists("salonbook:storage:auth_token"))
}

/*
TestFileStore_PreservesOtherKeys checks the file behaves as key/value storage.
*/
func TestFileStore_PreservesOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"onboarding_seen":"true"}`), 0o600))

	store := tokenstore.NewFileStore(path, discardLogger())
	store.Write(ctx, "tok123")
	store.Clear(ctx)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"onboarding_seen":"true"}`, string(raw))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

/*
TestFileStore_CorruptFile treats garbage as absent and recovers on write.
*/
func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	store := tokenstore.NewFileStore(path, discardLogger())

	_, ok := store.Read(ctx)
	assert.False(t, ok)

	store.Write(ctx, "tok123")
	got, ok := store.Read(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok123", got)
}

/*
TestRedisStore_UnreachableNeverFails checks a dead backend degrades to absent.
*/
func TestRedisStore_UnreachableNeverFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	store := tokenstore.NewRedisStore(client, discardLogger())

	assert.NotPanics(t, func() {
		store.Write(ctx, "tok123")
		store.Clear(ctx)
	})
	_, ok := store.Read(ctx)
	assert.False(t, ok)
}

/*
TestOpen_SelectsBackend verifies configuration-driven backend selection.
*/
func TestOpen_SelectsBackend(t *testing.T) {
	store, err := tokenstore.Open(&config.Config{TokenStore: config.StoreMemory}, nil, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &tokenstore.MemoryStore{}, store)

	store, err = tokenstore.Open(&config.Config{TokenStore: config.StoreFile, TokenFile: filepath.Join(t.TempDir(), "s.json")}, nil, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &tokenstore.FileStore{}, store)

	_, err = tokenstore.Open(&config.Config{TokenStore: config.StoreRedis}, nil, discardLogger())
	assert.Error(t, err)

	_, err = tokenstore.Open(&config.Config{TokenStore: "keychain"}, nil, discardLogger())
	assert.Error(t, err)
}
