// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/reelreads/reelreads/internal/config"
	"github.com/reelreads/reelreads/internal/models"
)

var testPrefs = models.Preferences{
	Mood:             "dark",
	Pace:             "fast",
	GenrePreferences: []string{"crime", "noir"},
	GenreBlocklist:   []string{"romance"},
}

func testLLMConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		BaseURL:     url,
		APIKey:      "test-key",
		Model:       "test-model",
		MaxTokens:   2000,
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}
}

// completionServer returns an OpenAI-compatible server that answers every
// chat completion with the given content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model %q", req.Model)
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateRecommendations(t *testing.T) {
	srv := completionServer(t, validUnifiedJSON)
	defer srv.Close()

	client := NewClient(testLLMConfig(srv.URL), 3)
	set, err := client.GenerateRecommendations(context.Background(), []string{"Arrival"}, &testPrefs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(set.Books) != 2 {
		t.Errorf("expected 2 books, got %d", len(set.Books))
	}
	if set.Profile.NarrativeStyle != "non-linear" {
		t.Errorf("unexpected profile: %+v", set.Profile)
	}
}

func TestGenerateRecommendationsAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(testLLMConfig(srv.URL), 3)
	_, err := client.GenerateRecommendations(context.Background(), []string{"Arrival"}, nil)
	if err == nil {
		t.Fatal("expected an error on 503")
	}
	var svcErr *models.ServiceError
	if !errors.As(err, &svcErr) || svcErr.Service != "llm" {
		t.Errorf("expected an llm ServiceError, got %v", err)
	}
}

func TestGenerateRecommendationsUnparseableOutput(t *testing.T) {
	srv := completionServer(t, "Sure! Here are some books you might like: Dune, Hyperion.")
	defer srv.Close()

	client := NewClient(testLLMConfig(srv.URL), 3)
	_, err := client.GenerateRecommendations(context.Background(), []string{"Arrival"}, nil)
	var svcErr *models.ServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("unparseable output should yield a ServiceError, got %v", err)
	}
}

func TestGenerateRecommendationsAPIErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	client := NewClient(testLLMConfig(srv.URL), 3)
	_, err := client.GenerateRecommendations(context.Background(), []string{"Arrival"}, nil)
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("expected the API error message surfaced, got %v", err)
	}
}

func TestAnalyzeTasteProfile(t *testing.T) {
	srv := completionServer(t, `{"themes":["memory"],"narrative_style":"fragmented","emotional_tone":"wistful","genre_fusion":"","character_preferences":"","artistic_sensibilities":"","confidence_score":0.8}`)
	defer srv.Close()

	client := NewClient(testLLMConfig(srv.URL), 3)
	profile, err := client.AnalyzeTasteProfile(context.Background(), []string{"Eternal Sunshine of the Spotless Mind"}, nil)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if profile.NarrativeStyle != "fragmented" || profile.ConfidenceScore != 0.8 {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestFallbackCandidates(t *testing.T) {
	set := FallbackCandidates([]string{"Heat", "Drive"})
	if len(set.Books) != 3 {
		t.Fatalf("expected 3 fallback books, got %d", len(set.Books))
	}
	for _, b := range set.Books {
		if b.Title == "" || b.Author == "" || b.Reason == "" {
			t.Errorf("fallback book incomplete: %+v", b)
		}
	}
	if set.Profile.ConfidenceScore != 0.6 {
		t.Errorf("fallback profile confidence should be 0.6, got %g", set.Profile.ConfidenceScore)
	}
	if set.MovieSummary != "Based on your taste for Heat and Drive" {
		t.Errorf("unexpected summary: %q", set.MovieSummary)
	}
}

func TestFallbackProfile(t *testing.T) {
	profile := FallbackProfile()
	if profile.ConfidenceScore != 0.5 || len(profile.Themes) == 0 {
		t.Errorf("unexpected fallback profile: %+v", profile)
	}
}
