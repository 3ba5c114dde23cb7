// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package recommend

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/reelreads/reelreads/internal/cache"
	"github.com/reelreads/reelreads/internal/catalog"
	"github.com/reelreads/reelreads/internal/config"
	"github.com/reelreads/reelreads/internal/llm"
	"github.com/reelreads/reelreads/internal/models"
)

// CandidateGenerator produces book candidates and taste profiles from a
// movie list. Implemented by internal/llm.
type CandidateGenerator interface {
	GenerateRecommendations(ctx context.Context, movies []string, prefs *models.Preferences) (*llm.CandidateSet, error)
	AnalyzeTasteProfile(ctx context.Context, movies []string, prefs *models.Preferences) (*models.TasteProfile, error)
}

// CatalogSearcher looks up book candidates in the catalog. Implemented by
// internal/catalog.
type CatalogSearcher interface {
	SearchBooks(ctx context.Context, query string) ([]catalog.BookCandidate, error)
}

// PosterFinder looks up movie posters. Implemented by internal/posters.
// A nil PosterFinder disables poster enrichment.
type PosterFinder interface {
	FindPoster(ctx context.Context, title string) (*models.PosterInfo, error)
}

// Request is one recommendation request after API-layer validation.
type Request struct {
	Movies          []string
	Preferences     *models.Preferences
	Mode            string
	IncludeInsights bool
}

// Orchestrator runs the recommendation pipeline.
type Orchestrator struct {
	cache     *cache.Cache
	generator CandidateGenerator
	searcher  CatalogSearcher
	posters   PosterFinder
	matcher   catalog.MatcherConfig
	cfg       config.RecommendConfig
	logger    zerolog.Logger
}

// New creates an orchestrator. posters may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(
	c *cache.Cache,
	generator CandidateGenerator,
	searcher CatalogSearcher,
	posters PosterFinder,
	matcher catalog.MatcherConfig,
	cfg config.RecommendConfig,
	logger zerolog.Logger,
) *Orchestrator {
	if cfg.MaxConcurrentEnrich <= 0 {
		cfg.MaxConcurrentEnrich = 5
	}
	return &Orchestrator{
		cache:     c,
		generator: generator,
		searcher:  searcher,
		posters:   posters,
		matcher:   matcher,
		cfg:       cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
	}
}

func (o *Orchestrator) requestKey(req Request) string {
	var mood, pace string
	var genres, excluded []string
	if req.Preferences != nil {
		mood = req.Preferences.Mood
		pace = req.Preferences.Pace
		genres = req.Preferences.GenrePreferences
		excluded = req.Preferences.GenreBlocklist
	}
	return cache.RecommendationKey(req.Movies, mood, pace, genres, excluded, req.Mode)
}

// GetCachedOrCompute returns the cached result for an equivalent request,
// or computes, caches, and returns a fresh one. It never returns an error:
// collaborator failures degrade the response instead.
func (o *Orchestrator) GetCachedOrCompute(ctx context.Context, req Request) *models.RecommendationResult {
	start := time.Now()
	key := o.requestKey(req)

	var cached models.RecommendationResult
	if o.cache.GetJSON(ctx, cache.NamespaceRecommendations, key, &cached) {
		cached.CacheHit = true
		// Insights are cheap to derive, so a hit cached without them can
		// still serve a request that asks for them.
		if req.IncludeInsights && cached.Insights == nil {
			cached.Insights = buildInsights(req.Movies, cached.Recommendations)
		}
		cached.ProcessingTime = time.Since(start).Seconds()
		o.logger.Debug().Str("key", key).Msg("recommendation served from cache")
		return &cached
	}

	result := o.compute(ctx, req)
	result.ProcessingTime = time.Since(start).Seconds()
	o.cache.SetJSON(ctx, cache.NamespaceRecommendations, key, result)
	return result
}

// Regenerate discards any cached result for the request and computes a
// fresh one.
func (o *Orchestrator) Regenerate(ctx context.Context, req Request) *models.RecommendationResult {
	start := time.Now()
	key := o.requestKey(req)
	o.cache.Invalidate(ctx, cache.NamespaceRecommendations, key)

	result := o.compute(ctx, req)
	result.ProcessingTime = time.Since(start).Seconds()
	o.cache.SetJSON(ctx, cache.NamespaceRecommendations, key, result)
	return result
}

// TasteProfile analyzes the movie list's aesthetic profile, cached in the
// profiles namespace. The bool reports whether the result was cached.
func (o *Orchestrator) TasteProfile(ctx context.Context, movies []string, prefs *models.Preferences) (*models.TasteProfile, bool) {
	var mood, pace string
	if prefs != nil {
		mood = prefs.Mood
		pace = prefs.Pace
	}
	key := cache.ProfileKey(movies, mood, pace)

	var cached models.TasteProfile
	if o.cache.GetJSON(ctx, cache.NamespaceProfiles, key, &cached) {
		return &cached, true
	}

	profile, err := o.generator.AnalyzeTasteProfile(ctx, movies, prefs)
	if err != nil {
		o.logger.Warn().Err(err).Msg("taste profile analysis failed, using fallback")
		return llm.FallbackProfile(), false
	}

	o.cache.SetJSON(ctx, cache.NamespaceProfiles, key, profile)
	return profile, false
}

// compute runs the full pipeline for a cache miss.
func (o *Orchestrator) compute(ctx context.Context, req Request) *models.RecommendationResult {
	var sets []models.RecommendationSet
	degraded := false

	if req.Mode == models.ModeIndividual {
		sets, degraded = o.generateIndividual(ctx, req)
	} else {
		sets, degraded = o.generateUnified(ctx, req)
	}

	o.enrichBooks(ctx, sets)
	o.enrichPosters(ctx, req.Movies, sets)

	result := &models.RecommendationResult{
		Recommendations: sets,
		Degraded:        degraded,
	}
	if req.IncludeInsights {
		result.Insights = buildInsights(req.Movies, sets)
	}
	return result
}

// generateUnified produces one recommendation set covering all movies.
func (o *Orchestrator) generateUnified(ctx context.Context, req Request) ([]models.RecommendationSet, bool) {
	set, err := o.generator.GenerateRecommendations(ctx, req.Movies, req.Preferences)
	degraded := false
	if err != nil {
		o.logger.Warn().Err(err).Msg("candidate generation failed, using degraded fallback")
		set = llm.FallbackCandidates(req.Movies)
		degraded = true
	}
	return []models.RecommendationSet{candidateSetToModel(set, req.Movies)}, degraded
}

// generateIndividual produces one recommendation set per movie. Sets are
// generated concurrently but returned in request order; a per-movie
// failure degrades only that movie's set.
func (o *Orchestrator) generateIndividual(ctx context.Context, req Request) ([]models.RecommendationSet, bool) {
	sets := make([]models.RecommendationSet, len(req.Movies))
	var degradedAny atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.MaxConcurrentEnrich)
	for i, movie := range req.Movies {
		g.Go(func() error {
			movies := []string{movie}
			set, err := o.generator.GenerateRecommendations(gctx, movies, req.Preferences)
			if err != nil {
				o.logger.Warn().Err(err).Str("movie", movie).
					Msg("per-movie generation failed, using degraded fallback")
				set = llm.FallbackCandidates(movies)
				degradedAny.Store(true)
			}
			sets[i] = candidateSetToModel(set, movies)
			return nil
		})
	}
	// Workers only write their own slot and never return errors.
	_ = g.Wait()

	return sets, degradedAny.Load()
}

func candidateSetToModel(set *llm.CandidateSet, movies []string) models.RecommendationSet {
	profile := set.Profile
	out := models.RecommendationSet{
		MovieSummary: set.MovieSummary,
		Books:        make([]models.BookRecommendation, len(set.Books)),
		TasteProfile: &profile,
	}
	copy(out.Books, set.Books)
	out.Movies = make([]models.MovieInfo, len(movies))
	for i, m := range movies {
		out.Movies[i] = models.MovieInfo{Title: m}
	}
	return out
}
