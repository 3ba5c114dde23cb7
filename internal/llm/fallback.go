// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package llm

import (
	"github.com/reelreads/reelreads/internal/models"
)

// FallbackCandidates returns the canned recommendation set used when the
// model is unreachable or its output cannot be parsed. The books are
// deliberately broad-appeal so the degraded response stays plausible for
// any movie list.
func FallbackCandidates(movies []string) *CandidateSet {
	return &CandidateSet{
		MovieSummary: MovieSummary(movies),
		Books: []models.BookRecommendation{
			{
				Title:           "The Seven Husbands of Evelyn Hugo",
				Author:          "Taylor Jenkins Reid",
				Reason:          "A compelling narrative that combines character depth with emotional complexity, appealing to viewers who appreciate sophisticated storytelling.",
				TasteMatchScore: 0.8,
				PrimaryAppeal:   "Character-driven storytelling",
			},
			{
				Title:           "Klara and the Sun",
				Author:          "Kazuo Ishiguro",
				Reason:          "Masterful blend of speculative elements with profound human themes, perfect for those who enjoy thoughtful, emotionally resonant narratives.",
				TasteMatchScore: 0.85,
				PrimaryAppeal:   "Thoughtful speculative fiction",
			},
			{
				Title:           "The Midnight Library",
				Author:          "Matt Haig",
				Reason:          "Philosophical exploration of life choices and possibilities, combining accessibility with deeper existential themes.",
				TasteMatchScore: 0.75,
				PrimaryAppeal:   "Philosophical exploration",
			},
		},
		Profile: models.TasteProfile{
			Themes:                []string{"character development", "emotional depth", "existential themes"},
			NarrativeStyle:        "Layered, character-driven storytelling",
			EmotionalTone:         "Thoughtful and introspective",
			GenreFusion:           "Literary fiction with speculative elements",
			CharacterPreferences:  "Complex, well-developed characters",
			ArtisticSensibilities: "Appreciation for literary craftsmanship",
			ConfidenceScore:       0.6,
		},
	}
}

// FallbackProfile returns the generic taste profile used when standalone
// profile analysis fails.
func FallbackProfile() *models.TasteProfile {
	return &models.TasteProfile{
		Themes:                []string{"character-driven narratives", "emotional complexity"},
		NarrativeStyle:        "Layered, sophisticated storytelling",
		EmotionalTone:         "Thoughtful and emotionally resonant",
		GenreFusion:           "Cross-genre sensibilities",
		CharacterPreferences:  "Complex, well-developed characters",
		ArtisticSensibilities: "Appreciation for narrative craftsmanship",
		ConfidenceScore:       0.5,
	}
}
