// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package llm

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"

	"github.com/reelreads/reelreads/internal/models"
)

var (
	errNoJSON         = errors.New("no JSON object in model output")
	errNoBooks        = errors.New("no valid book recommendations in model output")
	errNoTasteProfile = errors.New("no taste profile in model output")
)

// CandidateSet is the parsed output of one unified recommendation call.
type CandidateSet struct {
	MovieSummary string
	Books        []models.BookRecommendation
	Profile      models.TasteProfile
}

// unifiedPayload mirrors the JSON structure the model is instructed to
// produce.
type unifiedPayload struct {
	TasteProfile           profilePayload `json:"taste_profile"`
	UnifiedRecommendations []struct {
		Title           string  `json:"title"`
		Author          string  `json:"author"`
		Reason          string  `json:"reason"`
		TasteMatchScore float64 `json:"taste_match_score"`
		PrimaryAppeal   string  `json:"primary_appeal"`
	} `json:"unified_recommendations"`
}

type profilePayload struct {
	Themes                []string `json:"themes"`
	NarrativeStyle        string   `json:"narrative_style"`
	EmotionalTone         string   `json:"emotional_tone"`
	GenreFusion           string   `json:"genre_fusion"`
	CharacterPreferences  string   `json:"character_preferences"`
	ArtisticSensibilities string   `json:"artistic_sensibilities"`
	ConfidenceScore       float64  `json:"confidence_score"`
}

func (p profilePayload) toModel() models.TasteProfile {
	confidence := p.ConfidenceScore
	if confidence == 0 {
		confidence = 0.7
	}
	return models.TasteProfile{
		Themes:                p.Themes,
		NarrativeStyle:        p.NarrativeStyle,
		EmotionalTone:         p.EmotionalTone,
		GenreFusion:           p.GenreFusion,
		CharacterPreferences:  p.CharacterPreferences,
		ArtisticSensibilities: p.ArtisticSensibilities,
		ConfidenceScore:       confidence,
	}
}

// parseUnifiedResponse extracts the recommendation payload from raw model
// output. Books missing a title or author are dropped; an output with no
// usable books at all is an error.
func parseUnifiedResponse(content string, movies []string) (*CandidateSet, error) {
	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload unifiedPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, err
	}

	books := make([]models.BookRecommendation, 0, len(payload.UnifiedRecommendations))
	for _, b := range payload.UnifiedRecommendations {
		if b.Title == "" || b.Author == "" {
			continue
		}
		books = append(books, models.BookRecommendation{
			Title:           b.Title,
			Author:          b.Author,
			Reason:          b.Reason,
			TasteMatchScore: b.TasteMatchScore,
			PrimaryAppeal:   b.PrimaryAppeal,
		})
	}
	if len(books) == 0 {
		return nil, errNoBooks
	}

	return &CandidateSet{
		MovieSummary: MovieSummary(movies),
		Books:        books,
		Profile:      payload.TasteProfile.toModel(),
	}, nil
}

// parseProfileResponse extracts a bare taste profile object.
func parseProfileResponse(content string) (*models.TasteProfile, error) {
	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload profilePayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, err
	}
	if len(payload.Themes) == 0 && payload.NarrativeStyle == "" {
		return nil, errNoTasteProfile
	}

	profile := payload.toModel()
	return &profile, nil
}

// extractJSON pulls the first complete JSON object out of model output.
// Models wrap JSON in markdown fences or prose despite instructions, and
// truncated completions can cut the object mid-value; both are repaired
// here before unmarshaling.
func extractJSON(content string) (string, error) {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", errNoJSON
	}

	// Scan for the matching closing brace, skipping over string contents.
	if end := scanObjectEnd(content, start); end > start {
		return content[start:end], nil
	}

	// Truncated object: drop the incomplete trailing value, then close
	// every still-open container in reverse nesting order.
	jsonStr := trimDangling(content[start:])
	return jsonStr + closeDelimiters(jsonStr), nil
}

// scanObjectEnd returns the index just past the brace closing the object
// that opens at start, or -1 when the object never closes.
func scanObjectEnd(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 && ch == '}' {
				return i + 1
			}
		}
	}
	return -1
}

// trimDangling removes an incomplete trailing value from truncated JSON:
// an unterminated string, then any dangling "key": or trailing comma left
// behind by the cut.
func trimDangling(s string) string {
	if strings.Count(s, `"`)%2 != 0 {
		if last := strings.LastIndexByte(s, '"'); last > 0 {
			s = s[:last]
		}
	}
	s = strings.TrimRight(s, " \t\r\n")
	if strings.HasSuffix(s, ":") {
		// Cut back through the orphaned key to the previous element.
		if cut := strings.LastIndexAny(s, ",{["); cut >= 0 {
			if s[cut] == ',' {
				s = s[:cut]
			} else {
				s = s[:cut+1]
			}
		}
	}
	s = strings.TrimRight(s, " \t\r\n")
	return strings.TrimSuffix(s, ",")
}

// closeDelimiters returns the closers for every container left open in s.
func closeDelimiters(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	closers := make([]byte, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			closers = append(closers, '}')
		} else {
			closers = append(closers, ']')
		}
	}
	return string(closers)
}
