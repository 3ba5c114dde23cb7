// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package llm

import (
	"strings"
	"testing"
)

const validUnifiedJSON = `{
  "taste_profile": {
    "themes": ["identity", "memory"],
    "narrative_style": "non-linear",
    "emotional_tone": "melancholic",
    "genre_fusion": "sci-fi with literary depth",
    "character_preferences": "introspective leads",
    "artistic_sensibilities": "atmospheric",
    "confidence_score": 0.9
  },
  "unified_recommendations": [
    {
      "title": "Stories of Your Life and Others",
      "author": "Ted Chiang",
      "reason": "Cerebral speculative fiction.",
      "taste_match_score": 0.95,
      "primary_appeal": "big ideas"
    },
    {
      "title": "Kafka on the Shore",
      "author": "Haruki Murakami",
      "reason": "Dreamlike and melancholic.",
      "taste_match_score": 0.88,
      "primary_appeal": "atmosphere"
    }
  ]
}`

func TestParseUnifiedResponseCleanJSON(t *testing.T) {
	set, err := parseUnifiedResponse(validUnifiedJSON, []string{"Arrival"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(set.Books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(set.Books))
	}
	if set.Books[0].Title != "Stories of Your Life and Others" || set.Books[0].Author != "Ted Chiang" {
		t.Errorf("unexpected first book: %+v", set.Books[0])
	}
	if set.Profile.ConfidenceScore != 0.9 {
		t.Errorf("expected confidence 0.9, got %g", set.Profile.ConfidenceScore)
	}
	if set.MovieSummary != "Based on your interest in Arrival" {
		t.Errorf("unexpected summary: %q", set.MovieSummary)
	}
}

func TestParseUnifiedResponseMarkdownFences(t *testing.T) {
	content := "Here are your recommendations:\n```json\n" + validUnifiedJSON + "\n```\nEnjoy!"
	set, err := parseUnifiedResponse(content, []string{"Arrival", "Her"})
	if err != nil {
		t.Fatalf("fenced JSON should parse: %v", err)
	}
	if len(set.Books) != 2 {
		t.Errorf("expected 2 books, got %d", len(set.Books))
	}
	if set.MovieSummary != "Based on your taste for Arrival and Her" {
		t.Errorf("unexpected summary: %q", set.MovieSummary)
	}
}

func TestParseUnifiedResponseTruncated(t *testing.T) {
	// Completion cut off mid-string in the second book's reason.
	truncated := `{
  "taste_profile": {"themes": ["x"], "narrative_style": "y", "emotional_tone": "z",
   "genre_fusion": "", "character_preferences": "", "artistic_sensibilities": "", "confidence_score": 0.8},
  "unified_recommendations": [
    {"title": "Complete Book", "author": "Some Author", "reason": "fine", "taste_match_score": 0.9, "primary_appeal": "a"}`

	set, err := parseUnifiedResponse(truncated, []string{"Dune"})
	if err != nil {
		t.Fatalf("truncated JSON should be repaired: %v", err)
	}
	if len(set.Books) != 1 || set.Books[0].Title != "Complete Book" {
		t.Errorf("expected the complete book to survive repair, got %+v", set.Books)
	}
}

func TestParseUnifiedResponseDropsIncompleteBooks(t *testing.T) {
	content := `{
  "taste_profile": {"themes": ["x"], "confidence_score": 0.8},
  "unified_recommendations": [
    {"title": "", "author": "Ghost"},
    {"title": "No Author"},
    {"title": "Real Book", "author": "Real Author"}
  ]
}`
	set, err := parseUnifiedResponse(content, []string{"Heat"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(set.Books) != 1 || set.Books[0].Title != "Real Book" {
		t.Errorf("books missing title or author should be dropped, got %+v", set.Books)
	}
}

func TestParseUnifiedResponseNoBooks(t *testing.T) {
	content := `{"taste_profile": {"themes": ["x"]}, "unified_recommendations": []}`
	if _, err := parseUnifiedResponse(content, []string{"Heat"}); err == nil {
		t.Error("expected an error when no usable books are present")
	}
}

func TestParseUnifiedResponseNoJSON(t *testing.T) {
	if _, err := parseUnifiedResponse("I'm sorry, I can't help with that.", []string{"Heat"}); err == nil {
		t.Error("expected an error for prose-only output")
	}
}

func TestParseUnifiedResponseDefaultConfidence(t *testing.T) {
	content := `{
  "taste_profile": {"themes": ["x"]},
  "unified_recommendations": [{"title": "A", "author": "B"}]
}`
	set, err := parseUnifiedResponse(content, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if set.Profile.ConfidenceScore != 0.7 {
		t.Errorf("missing confidence should default to 0.7, got %g", set.Profile.ConfidenceScore)
	}
}

func TestParseProfileResponse(t *testing.T) {
	content := `Analysis complete. {"themes":["grief","hope"],"narrative_style":"slow burn","emotional_tone":"bittersweet","genre_fusion":"drama","character_preferences":"flawed","artistic_sensibilities":"restrained","confidence_score":0.85}`
	profile, err := parseProfileResponse(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(profile.Themes) != 2 || profile.ConfidenceScore != 0.85 {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestParseProfileResponseEmpty(t *testing.T) {
	if _, err := parseProfileResponse(`{}`); err == nil {
		t.Error("expected an error for an empty profile object")
	}
}

func TestExtractJSONBalancesBraces(t *testing.T) {
	jsonStr, err := extractJSON(`prefix {"a": {"b": 1}} suffix {"ignored": true}`)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if jsonStr != `{"a": {"b": 1}}` {
		t.Errorf("expected first complete object, got %q", jsonStr)
	}
}

func TestMovieSummary(t *testing.T) {
	tests := []struct {
		movies []string
		want   string
	}{
		{[]string{"Heat"}, "Based on your interest in Heat"},
		{[]string{"Heat", "Drive"}, "Based on your taste for Heat and Drive"},
		{[]string{"Heat", "Drive", "Collateral"}, "Based on your taste profile from Heat, Drive, and Collateral"},
	}
	for _, tt := range tests {
		if got := MovieSummary(tt.movies); got != tt.want {
			t.Errorf("MovieSummary(%v) = %q, want %q", tt.movies, got, tt.want)
		}
	}
}

func TestBuildUnifiedPromptConstraints(t *testing.T) {
	prompt := buildUnifiedPrompt([]string{"Heat", "Drive"}, nil, 3)
	if !strings.Contains(prompt, "Find the unified taste pattern across: Heat, Drive") {
		t.Error("multi-movie prompt should use the unified pattern instruction")
	}
	if strings.Contains(prompt, "CONSTRAINTS") {
		t.Error("nil preferences should add no constraints block")
	}

	prompt = buildUnifiedPrompt([]string{"Heat"}, &testPrefs, 5)
	if !strings.Contains(prompt, "Select 5 books") {
		t.Error("book count should be interpolated")
	}
	for _, want := range []string{"Mood alignment: dark", "Pacing: fast", "Favor: crime, noir", "Avoid: romance"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing constraint %q", want)
		}
	}
}
