// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelreads/config.yaml",
	"/etc/reelreads/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Timeout:           60 * time.Second,
			Environment:       "development",
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			APIKey:      "",
			Model:       "gpt-4o-mini",
			MaxTokens:   2000,
			Temperature: 0.7,
			Timeout:     60 * time.Second,
		},
		Catalog: CatalogConfig{
			URL:                "https://api.hardcover.app/v1/graphql",
			APIKey:             "",
			Timeout:            15 * time.Second,
			RateLimitPerMinute: 55,
			MaxRetries:         3,
			MinMatchScore:      0.05,
		},
		Posters: PostersConfig{
			Enabled: false,
			URL:     "",
			APIKey:  "",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Dir:                "/data/cache",
			Backend:            "filesystem",
			DefaultTTL:         time.Hour,
			RecommendationsTTL: time.Hour,
			BooksTTL:           24 * time.Hour,
			PostersTTL:         24 * time.Hour,
			ProfilesTTL:        2 * time.Hour,
		},
		Recommend: RecommendConfig{
			BooksPerRecommendation: 3,
			MaxMoviesPerRequest:    5,
			MaxConcurrentEnrich:    5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML config file (if it exists)
//  3. Environment variables: override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// LLM_API_KEY -> llm.api_key, CACHE_BOOKS_TTL -> cache.books_ttl
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when they arrive as strings from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings; YAML values are already
// slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, so random environment
// variables cannot pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"http_host":           "server.host",
		"http_port":           "server.port",
		"http_timeout":        "server.timeout",
		"environment":         "server.environment",
		"cors_origins":        "server.cors_origins",
		"rate_limit_requests": "server.rate_limit_reqs",
		"rate_limit_window":   "server.rate_limit_window",
		"disable_rate_limit":  "server.rate_limit_disabled",

		// LLM
		"llm_base_url":    "llm.base_url",
		"llm_api_key":     "llm.api_key",
		"llm_model":       "llm.model",
		"llm_max_tokens":  "llm.max_tokens",
		"llm_temperature": "llm.temperature",
		"llm_timeout":     "llm.timeout",

		// Catalog
		"catalog_url":             "catalog.url",
		"catalog_api_key":         "catalog.api_key",
		"catalog_timeout":         "catalog.timeout",
		"catalog_rate_limit":      "catalog.rate_limit_per_minute",
		"catalog_max_retries":     "catalog.max_retries",
		"catalog_min_match_score": "catalog.min_match_score",

		// Posters
		"posters_enabled": "posters.enabled",
		"posters_url":     "posters.url",
		"posters_api_key": "posters.api_key",
		"posters_timeout": "posters.timeout",

		// Cache
		"cache_dir":                 "cache.dir",
		"cache_backend":             "cache.backend",
		"cache_default_ttl":         "cache.default_ttl",
		"cache_recommendations_ttl": "cache.recommendations_ttl",
		"cache_books_ttl":           "cache.books_ttl",
		"cache_posters_ttl":         "cache.posters_ttl",
		"cache_profiles_ttl":        "cache.profiles_ttl",

		// Recommend
		"recommend_books_per_request":     "recommend.books_per_recommendation",
		"recommend_max_movies":            "recommend.max_movies_per_request",
		"recommend_max_concurrent_enrich": "recommend.max_concurrent_enrich",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
