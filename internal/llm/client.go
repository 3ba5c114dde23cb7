// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/reelreads/reelreads/internal/config"
	"github.com/reelreads/reelreads/internal/logging"
	"github.com/reelreads/reelreads/internal/metrics"
	"github.com/reelreads/reelreads/internal/models"
)

// ClientInterface defines the model operations. Both Client and
// CircuitBreakerClient implement this interface.
type ClientInterface interface {
	GenerateRecommendations(ctx context.Context, movies []string, prefs *models.Preferences) (*CandidateSet, error)
	AnalyzeTasteProfile(ctx context.Context, movies []string, prefs *models.Preferences) (*models.TasteProfile, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	booksCount  int
	httpClient  *http.Client
}

// NewClient creates a model client from configuration.
func NewClient(cfg config.LLMConfig, booksCount int) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if booksCount <= 0 {
		booksCount = 3
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		booksCount:  booksCount,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateRecommendations runs one unified recommendation completion and
// parses the result. Any API or parse failure returns a ServiceError; the
// caller substitutes the degraded fallback.
func (c *Client) GenerateRecommendations(ctx context.Context, movies []string, prefs *models.Preferences) (*CandidateSet, error) {
	prompt := buildUnifiedPrompt(movies, prefs, c.booksCount)

	// Low temperature keeps the output close to the requested JSON shape.
	content, err := c.chatCompletion(ctx, "recommend", systemPrompt, prompt, c.maxTokens, 0.3)
	if err != nil {
		return nil, models.NewServiceError("llm", err)
	}

	set, err := parseUnifiedResponse(content, movies)
	if err != nil {
		logging.Error().Err(err).Str("content_head", head(content, 200)).
			Msg("failed to parse model recommendations")
		return nil, models.NewServiceError("llm", err)
	}
	return set, nil
}

// AnalyzeTasteProfile runs the standalone profile completion. Preferences
// currently do not alter the profile prompt but are accepted for interface
// stability.
func (c *Client) AnalyzeTasteProfile(ctx context.Context, movies []string, _ *models.Preferences) (*models.TasteProfile, error) {
	content, err := c.chatCompletion(ctx, "profile", profileSystemPrompt, buildProfilePrompt(movies), 600, 0.6)
	if err != nil {
		return nil, models.NewServiceError("llm", err)
	}

	profile, err := parseProfileResponse(content)
	if err != nil {
		logging.Error().Err(err).Str("content_head", head(content, 200)).
			Msg("failed to parse taste profile")
		return nil, models.NewServiceError("llm", err)
	}
	return profile, nil
}

// chatCompletion performs one chat completions request and returns the
// first choice's content.
func (c *Client) chatCompletion(ctx context.Context, operation, system, user string, maxTokens int, temperature float64) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ExternalRequestDuration.WithLabelValues("llm", operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExternalRequestErrors.WithLabelValues("llm", operation).Inc()
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.ExternalRequestErrors.WithLabelValues("llm", operation).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
