// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package recommend

import (
	"sort"

	"github.com/reelreads/reelreads/internal/models"
)

// buildInsights summarizes the recommendation batch: the three most
// frequent taste-profile themes, a genre diversity score, and the average
// profile confidence.
func buildInsights(movies []string, sets []models.RecommendationSet) *models.RecommendationInsights {
	themeCounts := make(map[string]int)
	themeOrder := make(map[string]int)
	totalConfidence := 0.0
	profileCount := 0

	for _, set := range sets {
		if set.TasteProfile == nil {
			continue
		}
		for _, theme := range set.TasteProfile.Themes {
			if _, seen := themeOrder[theme]; !seen {
				themeOrder[theme] = len(themeOrder)
			}
			themeCounts[theme]++
		}
		if set.TasteProfile.ConfidenceScore > 0 {
			totalConfidence += set.TasteProfile.ConfidenceScore
			profileCount++
		}
	}

	themes := make([]string, 0, len(themeCounts))
	for theme := range themeCounts {
		themes = append(themes, theme)
	}
	// Most frequent first; equal counts keep first-seen order so the
	// output is deterministic.
	sort.Slice(themes, func(i, j int) bool {
		if themeCounts[themes[i]] != themeCounts[themes[j]] {
			return themeCounts[themes[i]] > themeCounts[themes[j]]
		}
		return themeOrder[themes[i]] < themeOrder[themes[j]]
	})
	if len(themes) > 3 {
		themes = themes[:3]
	}

	genres := make(map[string]bool)
	for _, set := range sets {
		for _, book := range set.Books {
			for _, g := range book.Genres {
				genres[g] = true
			}
		}
	}
	diversity := float64(len(genres)) / 10
	if diversity > 1 {
		diversity = 1
	}

	confidence := 0.5
	if profileCount > 0 {
		confidence = totalConfidence / float64(profileCount)
	}

	return &models.RecommendationInsights{
		TotalMoviesAnalyzed:      len(movies),
		DominantThemes:           themes,
		GenreDiversityScore:      diversity,
		RecommendationConfidence: confidence,
	}
}
