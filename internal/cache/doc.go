// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package cache provides the persistent expiring key-value cache that sits
// between the recommendation orchestrator and the slow external APIs.
//
// Entries are namespaced by payload category (recommendations, books,
// posters, profiles) with an independent TTL per namespace. Each entry is
// persisted as a self-describing envelope carrying its creation and expiry
// timestamps, so a reader never needs out-of-band state to decide
// freshness.
//
// The cache is a pure optimization layer: reads never fail (absent,
// expired, and corrupt entries all surface as a miss) and write failures
// are logged and swallowed. Expired or corrupt slots are deleted as a side
// effect of reading them, so the store cannot accumulate stale or broken
// entries indefinitely.
//
// Two storage backends implement the Store interface: a filesystem store
// (one file per entry, atomic temp-file-and-rename replacement) and a
// BadgerDB store for embedded single-file durability. The backend is
// chosen by configuration through NewStore.
package cache
