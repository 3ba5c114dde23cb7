// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package posters looks up movie poster images for display alongside
// recommendations. Poster lookup is strictly cosmetic: every failure
// degrades to "no poster" and never affects the recommendation itself.
package posters
