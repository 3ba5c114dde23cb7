// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelreads/reelreads/internal/api"
	"github.com/reelreads/reelreads/internal/cache"
	"github.com/reelreads/reelreads/internal/catalog"
	"github.com/reelreads/reelreads/internal/config"
	"github.com/reelreads/reelreads/internal/llm"
	"github.com/reelreads/reelreads/internal/logging"
	"github.com/reelreads/reelreads/internal/posters"
	"github.com/reelreads/reelreads/internal/recommend"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting ReelReads")

	store, err := cache.NewStore(cfg.Cache.Backend, cfg.Cache.Dir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open cache store")
	}
	c := cache.New(store, cache.Config{
		DefaultTTL: cfg.Cache.DefaultTTL,
		TTLs: map[string]time.Duration{
			cache.NamespaceRecommendations: cfg.Cache.RecommendationsTTL,
			cache.NamespaceBooks:           cfg.Cache.BooksTTL,
			cache.NamespacePosters:         cfg.Cache.PostersTTL,
			cache.NamespaceProfiles:        cfg.Cache.ProfilesTTL,
		},
	}, logging.Logger())
	defer func() {
		if err := c.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()

	// External clients, each behind its own circuit breaker.
	generator := llm.NewCircuitBreakerClient(llm.NewClient(cfg.LLM, cfg.Recommend.BooksPerRecommendation))
	searcher := catalog.NewCircuitBreakerClient(catalog.NewClient(cfg.Catalog))

	var posterFinder recommend.PosterFinder
	if cfg.Posters.Enabled {
		posterFinder = posters.NewClient(cfg.Posters)
		logging.Info().Str("url", cfg.Posters.URL).Msg("Poster lookup enabled")
	}

	matcherCfg := catalog.DefaultMatcherConfig()
	matcherCfg.MinMatchScore = cfg.Catalog.MinMatchScore

	orchestrator := recommend.New(
		c,
		generator,
		searcher,
		posterFinder,
		matcherCfg,
		cfg.Recommend,
		logging.Logger(),
	)

	handler := api.NewHandler(orchestrator, c, cfg.Recommend, logging.Logger())
	chiMw := api.NewChiMiddlewareFromConfig(
		cfg.Server.CORSOrigins,
		cfg.Server.RateLimitReqs,
		cfg.Server.RateLimitWindow,
		cfg.Server.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
