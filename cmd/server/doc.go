// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Command server runs the ReelReads API: it turns a list of favorite
// movies into book recommendations by combining an LLM taste analysis
// with book catalog metadata, cached on disk between requests.
//
// Configuration is read from defaults, an optional config.yaml, and
// environment variables, in that order. LLM_API_KEY, CATALOG_API_KEY,
// and CACHE_DIR are required.
package main
