// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Key derivation for cache lookups.
//
// Each builder canonicalizes its inputs (case folding, whitespace collapse,
// order-insensitive fields sorted), serializes them with a fixed field
// order, and fingerprints the result with SHA-256 truncated to 128 bits.
// Equivalent requests therefore always collide on the same slot, and the
// keys are fixed-length hex strings safe for any backend.

// normalizeText lowercases s and collapses runs of whitespace to single
// spaces, trimming the ends.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalizeList normalizes each element, drops empties, and sorts the
// result. Used for fields where ordering carries no meaning.
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := normalizeText(item); n != "" {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// normalizeSeq normalizes each element and drops empties, preserving
// order. Movie lists keep their order: the ranking is part of the taste
// signal, so reordering is a different request.
func normalizeSeq(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := normalizeText(item); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// fingerprint hashes the canonical serialization of v and returns the
// first 128 bits as lowercase hex.
func fingerprint(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Key payloads are plain strings and slices; marshaling cannot
		// fail for them. Fall back to hashing the error text so the key
		// is still deterministic.
		data = []byte(err.Error())
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

type recommendationKeyPayload struct {
	Kind     string   `json:"kind"`
	Movies   []string `json:"movies"`
	Mood     string   `json:"mood"`
	Pace     string   `json:"pace"`
	Genres   []string `json:"genres"`
	Excluded []string `json:"excluded"`
	Mode     string   `json:"mode"`
}

// RecommendationKey derives the cache key for a recommendation request.
// Movie order is significant; genre preference and blocklist order is not.
func RecommendationKey(movies []string, mood, pace string, genres, excluded []string, mode string) string {
	return fingerprint(recommendationKeyPayload{
		Kind:     "recommendation",
		Movies:   normalizeSeq(movies),
		Mood:     normalizeText(mood),
		Pace:     normalizeText(pace),
		Genres:   normalizeList(genres),
		Excluded: normalizeList(excluded),
		Mode:     normalizeText(mode),
	})
}

type bookKeyPayload struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BookKey derives the cache key for catalog metadata of a single book.
func BookKey(title, author string) string {
	return fingerprint(bookKeyPayload{
		Kind:   "book",
		Title:  normalizeText(title),
		Author: normalizeText(author),
	})
}

type profileKeyPayload struct {
	Kind   string   `json:"kind"`
	Movies []string `json:"movies"`
	Mood   string   `json:"mood"`
	Pace   string   `json:"pace"`
}

// ProfileKey derives the cache key for a taste profile. Profiles depend
// only on the movies and preferences, not on genre filters or mode.
func ProfileKey(movies []string, mood, pace string) string {
	return fingerprint(profileKeyPayload{
		Kind:   "profile",
		Movies: normalizeSeq(movies),
		Mood:   normalizeText(mood),
		Pace:   normalizeText(pace),
	})
}

type posterKeyPayload struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// PosterKey derives the cache key for a movie poster lookup.
func PosterKey(title string) string {
	return fingerprint(posterKeyPayload{
		Kind:  "poster",
		Title: normalizeText(title),
	})
}
