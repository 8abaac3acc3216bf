// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the two Redis consumers of salonbook.

  - The CLI keeps its bearer token in a local Redis on shared front desk
    terminals ([RoleClient]).
  - The stub API shares its token revocation list between instances
    ([RoleServer]).

Both only issue single-key commands, so the pool is sized per role rather
than per workload.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Role selects the pool profile of a connection.
type Role string

const (
	RoleClient Role = "client"
	RoleServer Role = "server"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second
)

// Connect parses redisURL, applies the role's pool profile and pings the
// server before returning.
func Connect(ctx context.Context, redisURL string, role Role, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	switch role {
	case RoleClient:
		options.PoolSize, options.MinIdleConns = 2, 1
	case RoleServer:
		options.PoolSize, options.MinIdleConns = 20, 2
	default:
		return nil, fmt.Errorf("redis: unknown role %q", role)
	}

	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Debug("redis_connected", slog.String("addr", options.Addr), slog.String("role", string(role)))
	return client, nil
}

// Ping reports whether client answers within the ping timeout.
func Ping(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

// Key joins a namespace prefix ending in ':' with the key parts.
func Key(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, ":")
}
