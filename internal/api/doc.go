// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package api provides HTTP routing and handlers using the Chi router.
//
// All endpoints respond with the models.APIResponse envelope. Recommendation
// endpoints never fail on collaborator outages: the orchestrator degrades the
// payload instead, so client-visible errors are limited to input validation,
// rate limiting, and cache administration failures.
package api
