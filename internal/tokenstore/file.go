// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/taibuivan/salonbook/internal/platform/constants"
)

var errCorrupt = errors.New("corrupt storage file")

// FileStore persists the token in a small JSON key/value file, the desktop
// counterpart of the device key/value storage. Other keys in the file are
// preserved.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a [FileStore] backed by path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger.With(slog.String("store", "file"))}
}

// Read returns the stored token. A missing file is an absent token.
func (store *FileStore) Read(ctx context.Context) (string, bool) {
	values, err := store.load()
	if err != nil {
		store.logger.WarnContext(ctx, "token_store_read_failed", slog.String("path", store.path), slog.Any("error", err))
		return "", false
	}

	token, ok := values[constants.TokenStorageKey]
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Write stores token under the fixed key.
func (store *FileStore) Write(ctx context.Context, token string) {
	if err := store.update(func(values map[string]string) {
		values[constants.TokenStorageKey] = token
	}); err != nil {
		store.logger.ErrorContext(ctx, "token_store_write_failed", slog.String("path", store.path), slog.Any("error", err))
	}
}

// Clear removes the fixed key.
func (store *FileStore) Clear(ctx context.Context) {
	if err := store.update(func(values map[string]string) {
		delete(values, constants.TokenStorageKey)
	}); err != nil {
		store.logger.ErrorContext(ctx, "token_store_clear_failed", slog.String("path", store.path), slog.Any("error", err))
	}
}

func (store *FileStore) load() (map[string]string, error) {
	values := map[string]string{}

	raw, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: read %s: %w", store.path, err)
	}

	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("tokenstore: decode %s: %w: %w", store.path, errCorrupt, err)
	}
	return values, nil
}

// update applies mutate to the current contents and writes them back. A
// corrupt file is replaced; a file that cannot be read is left alone.
func (store *FileStore) update(mutate func(map[string]string)) error {
	values, err := store.load()
	switch {
	case errors.Is(err, errCorrupt):
		values = map[string]string{}
	case err != nil:
		return err
	}
	mutate(values)

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: create dir: %w", err)
	}
	return writeJSONAtomic(store.path, values)
}

func writeJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err == nil {
		return nil
	}

	defer os.Remove(tmp)

	if runtime.GOOS == "windows" {
		_ = os.Remove(path)
	}
	return os.Rename(tmp, path)
}
