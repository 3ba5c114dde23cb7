// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package api

import (
	"bytes"
	"net/http"

	"github.com/google/uuid"

	"github.com/reelreads/reelreads/internal/cache"
)

// HealthLive handles GET /api/v1/health/live. It answers as long as the
// process serves requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready. Readiness requires a
// working cache: a probe value must survive a write/read round trip.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	probe := []byte(uuid.New().String())
	key := "readiness-probe"
	h.cache.Set(r.Context(), cache.NamespaceHealth, key, probe)
	got, ok := h.cache.Get(r.Context(), cache.NamespaceHealth, key)
	if !ok || !bytes.Equal(got, probe) {
		rw.Error(http.StatusServiceUnavailable, ErrCodeCacheError, "Cache probe failed")
		return
	}
	h.cache.Invalidate(r.Context(), cache.NamespaceHealth, key)

	rw.Success(map[string]string{"status": "ready"})
}
