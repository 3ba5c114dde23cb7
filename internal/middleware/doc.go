// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package middleware provides HTTP middleware shared across the API:
// request ID propagation and Prometheus request instrumentation. The
// middleware wraps http.HandlerFunc; the api package adapts it to Chi's
// func(http.Handler) http.Handler form.
package middleware
