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

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore persists entries in an embedded BadgerDB. Keys are prefixed
// with "<namespace>:" to keep partitions isolated. Badger's native TTL is
// applied on write so expired slots are reclaimed without a sweep, but the
// envelope timestamps remain authoritative at read time.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB at dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if dir == "" {
		return nil, errors.New("cache: badger store requires a directory")
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(namespace, key string) []byte {
	return []byte(namespace + ":" + key)
}

// Read returns the slot contents, or ErrNotFound.
func (s *BadgerStore) Read(_ context.Context, namespace, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(namespace, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get cache slot: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write fully replaces the slot inside a single transaction.
func (s *BadgerStore) Write(_ context.Context, namespace, key string, data []byte, ttl time.Duration) error {
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(badgerKey(namespace, key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes the slot; absent keys are not an error.
func (s *BadgerStore) Delete(_ context.Context, namespace, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(namespace, key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Clear drops a namespace prefix, or everything when namespace is empty.
func (s *BadgerStore) Clear(_ context.Context, namespace string) error {
	if namespace == "" {
		return s.db.DropAll()
	}
	return s.db.DropPrefix([]byte(namespace + ":"))
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
