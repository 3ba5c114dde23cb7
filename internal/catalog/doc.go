// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package catalog implements the book catalog client and fuzzy matcher.
//
// The client talks to the Hardcover GraphQL search API to look up editorial
// metadata (covers, ratings, page counts) for LLM-suggested books. Search
// results rarely match a suggestion exactly, so a deterministic scoring
// matcher selects the best candidate or rejects them all. Requests are rate
// limited, retried with backoff, and guarded by a circuit breaker.
package catalog
