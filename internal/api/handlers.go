// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reelreads/reelreads/internal/cache"
	"github.com/reelreads/reelreads/internal/config"
	"github.com/reelreads/reelreads/internal/models"
	"github.com/reelreads/reelreads/internal/recommend"
	"github.com/reelreads/reelreads/internal/validation"
)

// RecommendationService is the orchestrator surface the handlers depend on.
// Implemented by internal/recommend.
type RecommendationService interface {
	GetCachedOrCompute(ctx context.Context, req recommend.Request) *models.RecommendationResult
	Regenerate(ctx context.Context, req recommend.Request) *models.RecommendationResult
	TasteProfile(ctx context.Context, movies []string, prefs *models.Preferences) (*models.TasteProfile, bool)
}

// Handler holds the dependencies of all HTTP handlers.
type Handler struct {
	service RecommendationService
	cache   *cache.Cache
	cfg     config.RecommendConfig
	logger  zerolog.Logger
}

// NewHandler creates a handler set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(service RecommendationService, c *cache.Cache, cfg config.RecommendConfig, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		cache:   c,
		cfg:     cfg,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// parseRecommendRequest decodes and validates a recommendation request body
// plus its query parameters. A nil return means the response was already
// written.
func (h *Handler) parseRecommendRequest(r *http.Request, rw *ResponseWriter) *recommend.Request {
	var body models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rw.BadRequest("Request body must be valid JSON")
		return nil
	}

	if err := validation.ValidateStruct(&body); err != nil {
		apiErr := err.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return nil
	}

	if len(body.Movies) > h.cfg.MaxMoviesPerRequest {
		rw.ValidationError(
			fmt.Sprintf("Movies must contain at most %d items", h.cfg.MaxMoviesPerRequest),
			map[string]interface{}{"field": "Movies", "max": h.cfg.MaxMoviesPerRequest},
		)
		return nil
	}

	mode := r.URL.Query().Get("recommendation_type")
	switch mode {
	case "":
		mode = models.ModeUnified
	case models.ModeUnified, models.ModeIndividual:
	default:
		rw.ValidationError(
			"recommendation_type must be one of: unified, individual",
			map[string]interface{}{"field": "recommendation_type", "value": mode},
		)
		return nil
	}

	return &recommend.Request{
		Movies:          body.Movies,
		Preferences:     body.Preferences,
		Mode:            mode,
		IncludeInsights: r.URL.Query().Get("include_insights") == "true",
	}
}

// Recommend handles POST /api/v1/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	req := h.parseRecommendRequest(r, rw)
	if req == nil {
		return
	}

	result := h.service.GetCachedOrCompute(r.Context(), *req)
	h.logger.Info().
		Int("movies", len(req.Movies)).
		Str("mode", req.Mode).
		Bool("cache_hit", result.CacheHit).
		Bool("degraded", result.Degraded).
		Msg("recommendation served")
	rw.SuccessCached(result, result.CacheHit)
}

// Regenerate handles POST /api/v1/recommend/regenerate. It discards the
// cached result for an equivalent request and computes a fresh one.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)
	req := h.parseRecommendRequest(r, rw)
	if req == nil {
		return
	}

	result := h.service.Regenerate(r.Context(), *req)
	h.logger.Info().
		Int("movies", len(req.Movies)).
		Str("mode", req.Mode).
		Bool("degraded", result.Degraded).
		Msg("recommendation regenerated")
	rw.Success(result)
}

// TasteProfile handles POST /api/v1/taste-profile.
func (h *Handler) TasteProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	var body models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rw.BadRequest("Request body must be valid JSON")
		return
	}
	if err := validation.ValidateStruct(&body); err != nil {
		apiErr := err.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if len(body.Movies) > h.cfg.MaxMoviesPerRequest {
		rw.ValidationError(
			fmt.Sprintf("Movies must contain at most %d items", h.cfg.MaxMoviesPerRequest),
			map[string]interface{}{"field": "Movies", "max": h.cfg.MaxMoviesPerRequest},
		)
		return
	}

	profile, cached := h.service.TasteProfile(r.Context(), body.Movies, body.Preferences)
	rw.SuccessCached(profile, cached)
}
