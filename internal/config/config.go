// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values for every optional setting
//  2. Config file: optional YAML file (config.yaml)
//  3. Environment variables: override any setting
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	LLM       LLMConfig       `koanf:"llm"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Posters   PostersConfig   `koanf:"posters"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	Environment       string        `koanf:"environment"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LLMConfig configures the language model client used to generate
// candidate books and taste profiles.
type LLMConfig struct {
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
}

// CatalogConfig configures the book catalog client used to enrich
// candidate books with editorial metadata.
type CatalogConfig struct {
	URL                string        `koanf:"url"`
	APIKey             string        `koanf:"api_key"`
	Timeout            time.Duration `koanf:"timeout"`
	RateLimitPerMinute int           `koanf:"rate_limit_per_minute"`
	MaxRetries         int           `koanf:"max_retries"`
	MinMatchScore      float64       `koanf:"min_match_score"`
}

// PostersConfig configures the optional movie poster lookup service.
type PostersConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// CacheConfig configures the on-disk response cache.
type CacheConfig struct {
	Dir                string        `koanf:"dir"`
	Backend            string        `koanf:"backend"`
	DefaultTTL         time.Duration `koanf:"default_ttl"`
	RecommendationsTTL time.Duration `koanf:"recommendations_ttl"`
	BooksTTL           time.Duration `koanf:"books_ttl"`
	PostersTTL         time.Duration `koanf:"posters_ttl"`
	ProfilesTTL        time.Duration `koanf:"profiles_ttl"`
}

// RecommendConfig configures the recommendation pipeline.
type RecommendConfig struct {
	BooksPerRecommendation int `koanf:"books_per_recommendation"`
	MaxMoviesPerRequest    int `koanf:"max_movies_per_request"`
	MaxConcurrentEnrich    int `koanf:"max_concurrent_enrich"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitReqs)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL is required")
	}
	if !strings.HasPrefix(c.LLM.BaseURL, "http://") && !strings.HasPrefix(c.LLM.BaseURL, "https://") {
		return fmt.Errorf("LLM_BASE_URL must start with http:// or https://, got %s", c.LLM.BaseURL)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", c.LLM.Temperature)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.APIKey == "" {
		return fmt.Errorf("CATALOG_API_KEY is required")
	}
	if c.Catalog.URL == "" {
		return fmt.Errorf("CATALOG_URL is required")
	}
	if !strings.HasPrefix(c.Catalog.URL, "http://") && !strings.HasPrefix(c.Catalog.URL, "https://") {
		return fmt.Errorf("CATALOG_URL must start with http:// or https://, got %s", c.Catalog.URL)
	}
	if c.Catalog.RateLimitPerMinute <= 0 {
		return fmt.Errorf("CATALOG_RATE_LIMIT must be positive, got %d", c.Catalog.RateLimitPerMinute)
	}
	if c.Catalog.MinMatchScore < 0 || c.Catalog.MinMatchScore > 1 {
		return fmt.Errorf("CATALOG_MIN_MATCH_SCORE must be between 0 and 1, got %g", c.Catalog.MinMatchScore)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Dir == "" {
		return fmt.Errorf("CACHE_DIR is required")
	}
	switch c.Cache.Backend {
	case "", "filesystem", "badger":
	default:
		return fmt.Errorf("CACHE_BACKEND must be filesystem or badger, got %s", c.Cache.Backend)
	}
	for name, ttl := range map[string]time.Duration{
		"CACHE_DEFAULT_TTL":         c.Cache.DefaultTTL,
		"CACHE_RECOMMENDATIONS_TTL": c.Cache.RecommendationsTTL,
		"CACHE_BOOKS_TTL":           c.Cache.BooksTTL,
		"CACHE_POSTERS_TTL":         c.Cache.PostersTTL,
		"CACHE_PROFILES_TTL":        c.Cache.ProfilesTTL,
	} {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, ttl)
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.BooksPerRecommendation < 1 || c.Recommend.BooksPerRecommendation > 10 {
		return fmt.Errorf("RECOMMEND_BOOKS_PER_REQUEST must be between 1 and 10, got %d",
			c.Recommend.BooksPerRecommendation)
	}
	if c.Recommend.MaxMoviesPerRequest < 1 {
		return fmt.Errorf("RECOMMEND_MAX_MOVIES must be positive, got %d", c.Recommend.MaxMoviesPerRequest)
	}
	if c.Recommend.MaxConcurrentEnrich < 1 {
		return fmt.Errorf("RECOMMEND_MAX_CONCURRENT_ENRICH must be positive, got %d",
			c.Recommend.MaxConcurrentEnrich)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace/debug/info/warn/error/fatal/panic, got %s",
			c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %s", c.Logging.Format)
	}
	return nil
}
