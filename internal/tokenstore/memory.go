// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the token in process memory. Tests use it as the fake
// store; the CLI uses it when TOKEN_STORE=memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read returns the stored token.
func (store *MemoryStore) Read(_ context.Context) (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.token, store.set
}

// Write stores token.
func (store *MemoryStore) Write(_ context.Context, token string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token, store.set = token, token != ""
}

// Clear forgets the token.
func (store *MemoryStore) Clear(_ context.Context) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token, store.set = "", false
}
