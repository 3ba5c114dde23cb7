// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package cache

import (
	"strings"
	"testing"
)

func TestRecommendationKeyDeterministic(t *testing.T) {
	movies := []string{"Arrival", "Blade Runner 2049"}
	genres := []string{"sci-fi", "literary"}

	k1 := RecommendationKey(movies, "reflective", "slow", genres, nil, "unified")
	k2 := RecommendationKey(movies, "reflective", "slow", genres, nil, "unified")

	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %s vs %s", k1, k2)
	}
	if len(k1) != 32 {
		t.Errorf("expected 32-char hex key, got %d chars: %s", len(k1), k1)
	}
	if strings.ToLower(k1) != k1 {
		t.Errorf("key should be lowercase hex: %s", k1)
	}
}

func TestRecommendationKeyNormalization(t *testing.T) {
	k1 := RecommendationKey([]string{"  The   Matrix "}, "Dark", "FAST", []string{"Sci-Fi"}, nil, "unified")
	k2 := RecommendationKey([]string{"the matrix"}, "dark", "fast", []string{"sci-fi"}, nil, "unified")

	if k1 != k2 {
		t.Error("case and whitespace variants should map to the same key")
	}
}

func TestRecommendationKeyGenreOrderInsensitive(t *testing.T) {
	movies := []string{"Heat"}
	k1 := RecommendationKey(movies, "", "", []string{"thriller", "crime"}, []string{"romance", "horror"}, "unified")
	k2 := RecommendationKey(movies, "", "", []string{"crime", "thriller"}, []string{"horror", "romance"}, "unified")

	if k1 != k2 {
		t.Error("genre list order should not affect the key")
	}
}

func TestRecommendationKeyMovieOrderSensitive(t *testing.T) {
	k1 := RecommendationKey([]string{"Alien", "Aliens"}, "", "", nil, nil, "unified")
	k2 := RecommendationKey([]string{"Aliens", "Alien"}, "", "", nil, nil, "unified")

	if k1 == k2 {
		t.Error("movie ranking order should affect the key")
	}
}

func TestRecommendationKeyDistinguishesInputs(t *testing.T) {
	base := RecommendationKey([]string{"Dune"}, "epic", "slow", nil, nil, "unified")

	variants := map[string]string{
		"movie":    RecommendationKey([]string{"Dune Part Two"}, "epic", "slow", nil, nil, "unified"),
		"mood":     RecommendationKey([]string{"Dune"}, "tense", "slow", nil, nil, "unified"),
		"pace":     RecommendationKey([]string{"Dune"}, "epic", "fast", nil, nil, "unified"),
		"genres":   RecommendationKey([]string{"Dune"}, "epic", "slow", []string{"sci-fi"}, nil, "unified"),
		"excluded": RecommendationKey([]string{"Dune"}, "epic", "slow", nil, []string{"romance"}, "unified"),
		"mode":     RecommendationKey([]string{"Dune"}, "epic", "slow", nil, nil, "individual"),
	}
	for name, key := range variants {
		if key == base {
			t.Errorf("changing %s should change the key", name)
		}
	}
}

func TestBookKey(t *testing.T) {
	k1 := BookKey("Project Hail Mary", "Andy Weir")
	k2 := BookKey("  project  HAIL mary ", "andy weir")
	if k1 != k2 {
		t.Error("normalized title and author variants should collide")
	}

	if BookKey("Project Hail Mary", "Andy Weir") == BookKey("Project Hail Mary", "") {
		t.Error("author should contribute to the key")
	}
}

func TestKeyKindsDoNotCollide(t *testing.T) {
	// A book and a poster with the same title must not share a fingerprint
	// even though they would live in different namespaces anyway.
	if BookKey("Solaris", "") == PosterKey("Solaris") {
		t.Error("book and poster keys for the same title should differ")
	}
}

func TestProfileKeyIgnoresGenreFilters(t *testing.T) {
	// Profiles are derived from movies and preferences only, so two
	// requests differing only in genre filters share a profile slot.
	p := ProfileKey([]string{"Whiplash"}, "intense", "fast")
	if p != ProfileKey([]string{"Whiplash"}, "intense", "fast") {
		t.Error("profile key not deterministic")
	}
	if p == ProfileKey([]string{"Whiplash"}, "calm", "fast") {
		t.Error("mood should contribute to the profile key")
	}
}

func TestNormalizeList(t *testing.T) {
	got := normalizeList([]string{" B ", "", "a", "C  c"})
	want := []string{"a", "b", "c c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
