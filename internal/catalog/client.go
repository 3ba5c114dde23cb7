// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/reelreads/reelreads/internal/config"
	"github.com/reelreads/reelreads/internal/logging"
	"github.com/reelreads/reelreads/internal/metrics"
	"github.com/reelreads/reelreads/internal/models"
)

// ClientInterface defines the catalog search operations. Both Client and
// CircuitBreakerClient implement this interface.
type ClientInterface interface {
	SearchBooks(ctx context.Context, query string) ([]BookCandidate, error)
	Ping(ctx context.Context) error
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// errAuthFailed aborts retries: a bad API key will not fix itself.
var errAuthFailed = errors.New("catalog authentication failed")

// BookCandidate is one raw search hit from the catalog. Candidates are
// matcher input; only accepted matches are converted to models.BookMetadata
// and cached.
type BookCandidate struct {
	ID           flexInt        `json:"id"`
	Title        string         `json:"title"`
	Subtitle     string         `json:"subtitle"`
	Description  string         `json:"description"`
	AuthorNames  []string       `json:"author_names"`
	Rating       float64        `json:"rating"`
	RatingsCount int            `json:"ratings_count"`
	UsersCount   int            `json:"users_count"`
	ReleaseYear  int            `json:"release_year"`
	Pages        int            `json:"pages"`
	Genres       []string       `json:"genres"`
	Slug         string         `json:"slug"`
	Image        *documentImage `json:"image"`
}

type documentImage struct {
	URL string `json:"url"`
}

// flexInt tolerates catalog IDs arriving as either a JSON number or a
// quoted string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid catalog id %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}

// Metadata converts an accepted candidate to the cached metadata subset.
func (b *BookCandidate) Metadata() models.BookMetadata {
	meta := models.BookMetadata{
		Title:           b.Title,
		Authors:         b.AuthorNames,
		Rating:          b.Rating,
		RatingsCount:    b.RatingsCount,
		UsersCount:      b.UsersCount,
		CatalogID:       int(b.ID),
		PublicationYear: b.ReleaseYear,
		PageCount:       b.Pages,
		Genres:          b.Genres,
		Description:     b.Description,
	}
	if len(b.AuthorNames) > 0 {
		meta.Author = b.AuthorNames[0]
	}
	if b.Image != nil {
		meta.CoverURL = b.Image.URL
	}
	if b.Slug != "" {
		meta.CatalogURL = "https://hardcover.app/books/" + b.Slug
	}
	return meta
}

// Client provides access to the Hardcover GraphQL search API.
//
// Every request passes through a shared rate limiter sized to stay under
// the catalog's documented per-minute quota, regardless of how many book
// lookups run concurrently.
type Client struct {
	apiURL     string
	apiKey     string
	maxRetries int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg config.CatalogConfig) *Client {
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 55
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiURL:     strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
	}
}

// authHeader normalizes the configured key to a Bearer token. Keys pasted
// with the "Bearer " prefix already present are used as-is.
func (c *Client) authHeader() string {
	if strings.HasPrefix(c.apiKey, "Bearer ") {
		return c.apiKey
	}
	return "Bearer " + c.apiKey
}

const searchBooksQuery = `
query SearchBooks($searchQuery: String!, $perPage: Int!, $page: Int!) {
    search(query: $searchQuery, query_type: "books", per_page: $perPage, page: $page, sort: "activities_count:desc") {
        results
        page
        per_page
        query
        error
    }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type searchResponse struct {
	Data struct {
		Search struct {
			// Results is a jsonb scalar: sometimes an object, sometimes a
			// JSON-encoded string of that object.
			Results json.RawMessage `json:"results"`
			Error   string          `json:"error"`
		} `json:"search"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type searchResults struct {
	Hits []struct {
		Document BookCandidate `json:"document"`
	} `json:"hits"`
}

// SearchBooks runs one catalog search and returns the raw candidates in
// relevance order. Transient failures (timeouts, 429, 5xx) are retried
// with backoff; authentication failures are not.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]BookCandidate, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(lastErr, attempt)
			logging.Warn().Err(lastErr).Str("query", query).Int("attempt", attempt).
				Dur("delay", delay).Msg("retrying catalog search")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, models.NewServiceError("catalog", ctx.Err())
			}
		}

		candidates, err := c.searchOnce(ctx, query)
		if err == nil {
			return candidates, nil
		}
		if errors.Is(err, errAuthFailed) || ctx.Err() != nil {
			return nil, models.NewServiceError("catalog", err)
		}
		lastErr = err
	}
	return nil, models.NewServiceError("catalog", lastErr)
}

// errRateLimited marks 429 responses so the retry loop backs off longer.
var errRateLimited = errors.New("catalog rate limited")

func backoffDelay(err error, attempt int) time.Duration {
	if errors.Is(err, errRateLimited) {
		return time.Duration(attempt) * 5 * time.Second
	}
	return time.Duration(attempt) * time.Second
}

func (c *Client) searchOnce(ctx context.Context, query string) ([]BookCandidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(graphqlRequest{
		Query: searchBooksQuery,
		Variables: map[string]interface{}{
			"searchQuery": query,
			"perPage":     10,
			"page":        1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "ReelReads/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ExternalRequestDuration.WithLabelValues("catalog", "search").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExternalRequestErrors.WithLabelValues("catalog", "search").Inc()
		return nil, fmt.Errorf("catalog search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.ExternalRequestErrors.WithLabelValues("catalog", "search").Inc()
		return nil, errAuthFailed
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.ExternalRequestErrors.WithLabelValues("catalog", "search").Inc()
		return nil, errRateLimited
	case resp.StatusCode != http.StatusOK:
		metrics.ExternalRequestErrors.WithLabelValues("catalog", "search").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog search returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("catalog graphql error: %s", parsed.Errors[0].Message)
	}
	if parsed.Data.Search.Error != "" {
		return nil, fmt.Errorf("catalog search error: %s", parsed.Data.Search.Error)
	}

	return parseSearchResults(parsed.Data.Search.Results)
}

// parseSearchResults unwraps the jsonb results scalar, which arrives
// either as an object or as a JSON-encoded string of that object.
func parseSearchResults(raw json.RawMessage) ([]BookCandidate, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	data := []byte(raw)
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("unwrap results string: %w", err)
		}
		data = []byte(inner)
	}

	var results searchResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	candidates := make([]BookCandidate, 0, len(results.Hits))
	for _, hit := range results.Hits {
		if hit.Document.Title == "" {
			continue
		}
		candidates = append(candidates, hit.Document)
	}
	return candidates, nil
}

// Ping verifies the catalog API is reachable and the key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.searchOnce(ctx, "test")
	if err != nil {
		return models.NewServiceError("catalog", err)
	}
	return nil
}
