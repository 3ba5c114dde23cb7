// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package llm generates book candidates and taste profiles from movie
// lists using an OpenAI-compatible chat completions API.
//
// Model output is requested as strict JSON but parsed defensively: fenced
// code blocks, leading prose, and truncated objects are repaired where
// possible. When the API or the parse fails, callers receive a ServiceError
// and are expected to fall back to the canned degraded response in
// fallback.go rather than failing the user's request.
package llm
