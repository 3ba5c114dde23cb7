// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package posters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/reelreads/reelreads/internal/config"
	"github.com/reelreads/reelreads/internal/metrics"
	"github.com/reelreads/reelreads/internal/models"
)

// ClientInterface defines the poster lookup operation.
type ClientInterface interface {
	FindPoster(ctx context.Context, title string) (*models.PosterInfo, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// Client queries a movie image search API for poster URLs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a poster client from configuration.
func NewClient(cfg config.PostersConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type posterSearchResponse struct {
	Results []struct {
		Title     string `json:"title"`
		PosterURL string `json:"poster_url"`
		Year      int    `json:"year"`
	} `json:"results"`
}

// FindPoster returns poster info for a movie title, or (nil, nil) when the
// service has no poster for it. Errors are ServiceErrors; callers treat
// both cases as "no poster".
func (c *Client) FindPoster(ctx context.Context, title string) (*models.PosterInfo, error) {
	query := url.Values{"query": {title}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, models.NewServiceError("posters", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ExternalRequestDuration.WithLabelValues("posters", "search").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExternalRequestErrors.WithLabelValues("posters", "search").Inc()
		return nil, models.NewServiceError("posters", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.ExternalRequestErrors.WithLabelValues("posters", "search").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, models.NewServiceError("posters",
			fmt.Errorf("poster search returned status %d: %s", resp.StatusCode, string(body)))
	}

	var parsed posterSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, models.NewServiceError("posters", fmt.Errorf("decode poster response: %w", err))
	}

	for _, r := range parsed.Results {
		if r.PosterURL != "" {
			return &models.PosterInfo{
				Title:     r.Title,
				PosterURL: r.PosterURL,
				Year:      r.Year,
			}, nil
		}
	}
	return nil, nil
}
