// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package cache

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// Cache namespaces. The set is open: any string is a valid namespace and
// gets its own isolated storage partition, but these are the ones the
// application uses.
const (
	NamespaceRecommendations = "recommendations"
	NamespaceBooks           = "books"
	NamespacePosters         = "posters"
	NamespaceProfiles        = "profiles"

	// NamespaceHealth holds short-lived readiness probe values only. It is
	// excluded from Namespaces so admin operations skip it.
	NamespaceHealth = "health"
)

// Namespaces returns every known namespace, for administration endpoints
// that operate on the whole cache.
func Namespaces() []string {
	return []string{
		NamespaceRecommendations,
		NamespaceBooks,
		NamespacePosters,
		NamespaceProfiles,
	}
}

// Entry is the self-describing record persisted for each cached value.
// Old entries must either parse into this shape or be treated as corrupt;
// they must never crash the reader.
type Entry struct {
	Namespace string          `json:"namespace"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	Value     json.RawMessage `json:"value"`
}

// Entry corruption reasons surfaced in diagnostic logs.
var (
	errEntryNoValue       = errors.New("entry has no value")
	errEntryNamespace     = errors.New("entry namespace mismatch")
	errEntryNoTimestamps  = errors.New("entry missing timestamps")
	errEntryTimestampsOOO = errors.New("entry expires before creation")
)

// validate reports whether the entry is structurally sound for the given
// namespace. A non-nil return means the slot is corrupt and must be
// self-healed by deletion.
func (e *Entry) validate(namespace string) error {
	if len(e.Value) == 0 {
		return errEntryNoValue
	}
	if e.Namespace != namespace {
		return errEntryNamespace
	}
	if e.CreatedAt.IsZero() || e.ExpiresAt.IsZero() {
		return errEntryNoTimestamps
	}
	if e.ExpiresAt.Before(e.CreatedAt) {
		return errEntryTimestampsOOO
	}
	return nil
}

// expired reports whether the entry is past its expiry at the given time.
// An entry is readable iff now <= ExpiresAt.
func (e *Entry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
