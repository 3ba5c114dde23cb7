// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package llm

import (
	"fmt"
	"strings"

	"github.com/reelreads/reelreads/internal/models"
)

const systemPrompt = `You are a literary taste analyst. Your task is to analyze movie preferences and recommend books.

CRITICAL: You must respond with ONLY valid JSON. No explanations, no markdown, no extra text.

ANALYSIS PRINCIPLES:
- Identify themes, tone, and narrative style across movies
- Extract emotional and artistic preferences
- Find deeper aesthetic connections

SCORING:
- confidence_score: 0.7-1.0 based on pattern clarity
- taste_match_score: 0.7-1.0 based on thematic alignment

RESPONSE FORMAT: Valid JSON only, exactly matching the required structure.`

const profileSystemPrompt = `You are an expert in cross-media aesthetic analysis. Extract unified patterns from film preferences. Always respond with valid JSON only.`

const responseSchema = `{
  "taste_profile": {
    "themes": ["theme1", "theme2", "theme3"],
    "narrative_style": "concise description of storytelling preferences",
    "emotional_tone": "preferred emotional register",
    "genre_fusion": "genre preferences and blending patterns",
    "character_preferences": "preferred character archetypes and development",
    "artistic_sensibilities": "aesthetic and stylistic preferences",
    "confidence_score": 0.85
  },
  "unified_recommendations": [
    {
      "title": "Book Title",
      "author": "Author Name",
      "reason": "75+ word explanation connecting to unified taste profile",
      "taste_match_score": 0.95,
      "primary_appeal": "core aspect of taste this book satisfies"
    }
  ]
}`

// buildUnifiedPrompt assembles the user prompt for unified recommendations.
func buildUnifiedPrompt(movies []string, prefs *models.Preferences, booksCount int) string {
	var b strings.Builder

	if len(movies) == 1 {
		fmt.Fprintf(&b, "Analyze %s to extract the viewer's aesthetic preferences:", movies[0])
	} else {
		fmt.Fprintf(&b, "Find the unified taste pattern across: %s", strings.Join(movies, ", "))
	}

	fmt.Fprintf(&b, `

STEP 1 - TASTE ANALYSIS:
Extract the aesthetic DNA by identifying:
- Recurring themes and emotional territories
- Narrative complexity preferences (linear/non-linear, character vs. plot-driven)
- Tonal signatures (dark/light, realistic/fantastical, introspective/action-oriented)
- Character archetype preferences and relationship dynamics
- Visual/atmospheric sensibilities that translate to literary mood

STEP 2 - BOOK RECOMMENDATIONS:
Select %d books that share this aesthetic DNA. Prioritize:
- Thematic resonance over genre matching
- Narrative sophistication level alignment
- Emotional and tonal consistency
- Character depth matching viewer preferences`, booksCount)

	if constraints := preferenceConstraints(prefs); len(constraints) > 0 {
		b.WriteString("\n\nCONSTRAINTS:\n- ")
		b.WriteString(strings.Join(constraints, "\n- "))
	}

	b.WriteString("\n\nCRITICAL: Respond with ONLY the JSON below. No explanations, no markdown, no extra text:\n\n")
	b.WriteString(responseSchema)

	return b.String()
}

// preferenceConstraints renders the optional user preferences as prompt
// constraint lines. Nil or empty preferences produce none.
func preferenceConstraints(prefs *models.Preferences) []string {
	if prefs == nil {
		return nil
	}
	var constraints []string
	if prefs.Mood != "" {
		constraints = append(constraints, "Mood alignment: "+prefs.Mood)
	}
	if prefs.Pace != "" {
		constraints = append(constraints, "Pacing: "+prefs.Pace)
	}
	if len(prefs.GenrePreferences) > 0 {
		constraints = append(constraints, "Favor: "+strings.Join(prefs.GenrePreferences, ", "))
	}
	if len(prefs.GenreBlocklist) > 0 {
		constraints = append(constraints, "Avoid: "+strings.Join(prefs.GenreBlocklist, ", "))
	}
	return constraints
}

// buildProfilePrompt assembles the user prompt for standalone taste
// profile analysis.
func buildProfilePrompt(movies []string) string {
	return fmt.Sprintf(`Extract the unified aesthetic profile from: %s

ANALYSIS FRAMEWORK:
- Thematic territories: Core emotional/philosophical themes
- Narrative DNA: Structural and storytelling preferences
- Tonal signature: Emotional register and atmospheric preferences
- Character archetypes: Relationship dynamics and development patterns
- Artistic sensibilities: Visual/stylistic elements that translate to literary mood

SCORING: Rate confidence (0.5-1.0) based on pattern clarity across films.

RESPONSE FORMAT:
{
  "themes": ["specific thematic elements"],
  "narrative_style": "storytelling approach preferences",
  "emotional_tone": "tonal and atmospheric preferences",
  "genre_fusion": "genre blending and boundary preferences",
  "character_preferences": "character type and development preferences",
  "artistic_sensibilities": "aesthetic and stylistic preferences",
  "confidence_score": 0.85
}`, strings.Join(movies, ", "))
}

// MovieSummary phrases the movie list for display in a recommendation set.
func MovieSummary(movies []string) string {
	switch len(movies) {
	case 0:
		return "Based on your taste profile"
	case 1:
		return "Based on your interest in " + movies[0]
	case 2:
		return fmt.Sprintf("Based on your taste for %s and %s", movies[0], movies[1])
	default:
		return fmt.Sprintf("Based on your taste profile from %s, and %s",
			strings.Join(movies[:len(movies)-1], ", "), movies[len(movies)-1])
	}
}
