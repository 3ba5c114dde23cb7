// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package api

import (
	"net/http"

	"github.com/reelreads/reelreads/internal/cache"
)

// CacheStats handles GET /api/v1/cache/stats. It reports per-namespace
// hit/miss/self-heal counters for the current process lifetime.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w).Success(map[string]interface{}{
		"namespaces": h.cache.Stats(),
	})
}

// CacheClear handles DELETE /api/v1/cache. With ?namespace= it clears one
// namespace; without, it clears everything.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	ns := r.URL.Query().Get("namespace")
	if ns != "" && !knownNamespace(ns) {
		rw.ValidationError(
			"namespace must be one of: recommendations, books, posters, profiles",
			map[string]interface{}{"field": "namespace", "value": ns},
		)
		return
	}

	if err := h.cache.Clear(r.Context(), ns); err != nil {
		h.logger.Error().Err(err).Str("namespace", ns).Msg("cache clear failed")
		rw.Error(http.StatusInternalServerError, ErrCodeCacheError, "Failed to clear cache")
		return
	}

	cleared := []string{ns}
	if ns == "" {
		cleared = cache.Namespaces()
	}
	h.logger.Info().Strs("namespaces", cleared).Msg("cache cleared")
	rw.Success(map[string]interface{}{"cleared": cleared})
}

func knownNamespace(ns string) bool {
	for _, known := range cache.Namespaces() {
		if ns == known {
			return true
		}
	}
	return false
}
