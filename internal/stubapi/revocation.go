// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/salonbook/internal/platform/constants"
	redisstore "github.com/taibuivan/salonbook/internal/platform/redis"
	"github.com/taibuivan/salonbook/internal/platform/sec"
)

// Revocations remembers logged-out token IDs until the tokens expire anyway.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// # Memory Backend

// MemoryRevocations keeps revoked IDs in process memory.
type MemoryRevocations struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

// NewMemoryRevocations creates an empty revocation list.
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{until: make(map[string]time.Time), now: time.Now}
}

// Revoke implements [Revocations].
func (list *MemoryRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	list.mu.Lock()
	defer list.mu.Unlock()

	list.until[tokenID] = until
	return nil
}

// IsRevoked implements [Revocations]. Expired entries are dropped on sight.
func (list *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	until, ok := list.until[tokenID]
	if !ok {
		return false, nil
	}
	if list.now().After(until) {
		delete(list.until, tokenID)
		return false, nil
	}
	return true, nil
}

// # Redis Backend

// RedisRevocations shares the revocation list between stub instances.
type RedisRevocations struct {
	client *goredis.Client
}

// NewRedisRevocations binds the list to a connected client.
func NewRedisRevocations(client *goredis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

// Revoke implements [Revocations]. The key expires with the token.
func (list *RedisRevocations) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := list.client.Set(ctx, redisstore.Key(constants.RedisPrefixRevoked, tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("stubapi: revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements [Revocations].
func (list *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := list.client.Exists(ctx, redisstore.Key(constants.RedisPrefixRevoked, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("stubapi: check revocation: %w", err)
	}
	return count > 0, nil
}

// # Token Verification

// Verifier accepts signed, unexpired and unrevoked tokens.
type Verifier struct {
	tokens      *sec.TokenService
	revocations Revocations
}

// NewVerifier combines signature checks with the revocation list.
func NewVerifier(tokens *sec.TokenService, revocations Revocations) *Verifier {
	return &Verifier{tokens: tokens, revocations: revocations}
}

// VerifyToken implements middleware.TokenVerifier.
func (verifier *Verifier) VerifyToken(ctx context.Context, tokenStr string) (*sec.AuthClaims, error) {
	claims, err := verifier.tokens.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := verifier.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, sec.ErrInvalidToken
	}
	return claims, nil
}
