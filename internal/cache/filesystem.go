// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FilesystemStore persists one file per entry under <root>/<namespace>/.
// Namespace directories are created lazily on first write. Writes go to a
// temporary file in the target directory followed by os.Rename, so a
// concurrent reader sees either the previous complete file or the new one.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a store rooted at dir, creating it if absent.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if dir == "" {
		return nil, errors.New("cache: filesystem store requires a root directory")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache root: %w", err)
	}
	return &FilesystemStore{root: dir}, nil
}

// slotPath maps (namespace, key) to a file path. Keys are fixed-length hex
// fingerprints, so they are always safe path segments; namespaces come
// from configuration and are sanitized against separators anyway.
func (s *FilesystemStore) slotPath(namespace, key string) (string, error) {
	if namespace == "" || key == "" {
		return "", errors.New("cache: empty namespace or key")
	}
	if strings.ContainsAny(namespace, `/\`) || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("cache: invalid slot %s/%s", namespace, key)
	}
	return filepath.Join(s.root, namespace, key+".json"), nil
}

// Read returns the slot contents, or ErrNotFound when no file exists.
func (s *FilesystemStore) Read(_ context.Context, namespace, key string) ([]byte, error) {
	path, err := s.slotPath(namespace, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cache slot: %w", err)
	}
	return data, nil
}

// Write atomically replaces the slot. The temp file is created in the
// namespace directory so the rename never crosses filesystems.
func (s *FilesystemStore) Write(_ context.Context, namespace, key string, data []byte, _ time.Duration) error {
	path, err := s.slotPath(namespace, key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create namespace dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+key+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace cache slot: %w", err)
	}
	return nil
}

// Delete removes the slot. Absent slots are not an error: a read racing a
// delete must resolve to a miss, not a failure.
func (s *FilesystemStore) Delete(_ context.Context, namespace, key string) error {
	path, err := s.slotPath(namespace, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete cache slot: %w", err)
	}
	return nil
}

// Clear removes a whole namespace partition, or every partition when
// namespace is empty.
func (s *FilesystemStore) Clear(_ context.Context, namespace string) error {
	if namespace == "" {
		entries, err := os.ReadDir(s.root)
		if err != nil {
			return fmt.Errorf("list cache root: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
				return fmt.Errorf("clear namespace %s: %w", e.Name(), err)
			}
		}
		return nil
	}
	if strings.ContainsAny(namespace, `/\`) {
		return fmt.Errorf("cache: invalid namespace %q", namespace)
	}
	if err := os.RemoveAll(filepath.Join(s.root, namespace)); err != nil {
		return fmt.Errorf("clear namespace %s: %w", namespace, err)
	}
	return nil
}

// Close is a no-op for the filesystem backend.
func (s *FilesystemStore) Close() error {
	return nil
}
