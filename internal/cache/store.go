// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Store.Read when no slot exists for the key.
var ErrNotFound = errors.New("cache: entry not found")

// Store is the raw storage backend beneath the cache. It deals in opaque
// serialized envelopes; freshness and corruption checks live in Cache.
//
// Implementations must provide per-key atomic replacement: a reader racing
// a writer observes either the old complete record or the new complete
// record, and a reader racing a delete resolves to ErrNotFound.
type Store interface {
	// Read returns the serialized envelope for the key, or ErrNotFound.
	Read(ctx context.Context, namespace, key string) ([]byte, error)

	// Write fully replaces the slot for the key. The ttl is advisory:
	// backends with native expiry may use it to reclaim space, but the
	// envelope timestamps remain authoritative for readers.
	Write(ctx context.Context, namespace, key string, data []byte, ttl time.Duration) error

	// Delete removes the slot. Deleting an absent key is not an error.
	Delete(ctx context.Context, namespace, key string) error

	// Clear removes every slot in the namespace, or all namespaces when
	// namespace is empty.
	Clear(ctx context.Context, namespace string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by NewStore.
const (
	BackendFilesystem = "filesystem"
	BackendBadger     = "badger"
)

// NewStore creates a storage backend by name rooted at dir.
func NewStore(backend, dir string) (Store, error) {
	switch backend {
	case BackendFilesystem, "":
		return NewFilesystemStore(dir)
	case BackendBadger:
		return NewBadgerStore(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want %q or %q)",
			backend, BackendFilesystem, BackendBadger)
	}
}
