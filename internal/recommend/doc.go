// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package recommend orchestrates the recommendation pipeline: cache
// lookup, LLM candidate generation, concurrent catalog enrichment, poster
// lookup, and insights assembly.
//
// The orchestrator absorbs every collaborator failure. An LLM outage
// produces the degraded fallback response; a catalog or poster failure
// leaves the affected book or movie unenriched. Requests that pass input
// validation always succeed.
package recommend
