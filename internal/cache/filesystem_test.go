// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilesystemStoreReadWrite(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	if err := store.Write(ctx, "books", "abc123", []byte(`{"x":1}`), 0); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := store.Read(ctx, "books", "abc123")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != `{"x":1}` {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestFilesystemStoreNotFound(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Read(context.Background(), "books", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFilesystemStoreDeleteAbsent(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(context.Background(), "books", "missing"); err != nil {
		t.Errorf("deleting an absent key should not fail: %v", err)
	}
}

func TestFilesystemStoreRejectsPathSeparators(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Write(ctx, "books", "../escape", []byte(`1`), 0); err == nil {
		t.Error("expected an error for a key containing a path separator")
	}
	if err := store.Write(ctx, "a/b", "abc", []byte(`1`), 0); err == nil {
		t.Error("expected an error for a namespace containing a path separator")
	}
	if err := store.Clear(ctx, `..\evil`); err == nil {
		t.Error("expected an error for a namespace containing a backslash")
	}
}

func TestFilesystemStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Write(ctx, "books", "abc123", []byte(`{"x":1}`), 0); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(dir, "books"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one slot file, got %d", len(entries))
	}
}

func TestFilesystemStoreClearRoot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	_ = store.Write(ctx, "books", "a1", []byte(`1`), 0)
	_ = store.Write(ctx, "posters", "b2", []byte(`2`), 0)

	if err := store.Clear(ctx, ""); err != nil {
		t.Fatalf("clear all failed: %v", err)
	}
	if _, err := store.Read(ctx, "books", "a1"); !errors.Is(err, ErrNotFound) {
		t.Error("expected books cleared")
	}
	if _, err := store.Read(ctx, "posters", "b2"); !errors.Is(err, ErrNotFound) {
		t.Error("expected posters cleared")
	}
	// Root itself survives so the store keeps working.
	if err := store.Write(ctx, "books", "a1", []byte(`3`), 0); err != nil {
		t.Errorf("write after clear failed: %v", err)
	}
}
