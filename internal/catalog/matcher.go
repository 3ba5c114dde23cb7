// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package catalog

import (
	"strings"
)

// MatchQuery is the book identity to match search candidates against.
// Author is optional; when empty, author signals are skipped entirely.
type MatchQuery struct {
	Title  string
	Author string
	Year   int
}

// MatcherConfig holds the scoring weights. Scores are on a roughly [0, 1.3]
// scale: title similarity contributes at most 1.0, author and popularity
// bonuses stack on top.
type MatcherConfig struct {
	ExactTitle       float64
	TitleInCandidate float64
	CandidateInTitle float64
	JaccardWeight    float64
	AuthorBonus      float64
	AuthorPenalty    float64
	YearBonus        float64
	MinMatchScore    float64
}

// DefaultMatcherConfig returns the production scoring weights.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		ExactTitle:       1.00,
		TitleInCandidate: 0.90,
		CandidateInTitle: 0.85,
		JaccardWeight:    0.80,
		AuthorBonus:      0.20,
		AuthorPenalty:    0.70,
		YearBonus:        0.02,
		MinMatchScore:    0.05,
	}
}

// matchStopWords are dropped before token-overlap scoring. Articles and
// prepositions carry no identity signal and inflate Jaccard denominators.
var matchStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "with": true,
	"by": true,
}

// SelectBestMatch picks the candidate that best matches the query, or
// reports none when every candidate scores below cfg.MinMatchScore.
// The function is pure: same inputs, same output. Ties break toward the
// more popular candidate, then toward the earlier one in search order.
func SelectBestMatch(query MatchQuery, candidates []BookCandidate, cfg MatcherConfig) (*BookCandidate, float64, bool) {
	if len(candidates) == 0 {
		return nil, 0, false
	}

	bestIdx := -1
	bestScore := 0.0
	for i := range candidates {
		score := scoreCandidate(query, &candidates[i], cfg)
		if score <= 0 {
			continue
		}
		if bestIdx < 0 || score > bestScore ||
			(score == bestScore && morePopular(&candidates[i], &candidates[bestIdx])) {
			bestIdx = i
			bestScore = score
		}
	}

	if bestIdx < 0 || bestScore < cfg.MinMatchScore {
		return nil, bestScore, false
	}
	return &candidates[bestIdx], bestScore, true
}

// scoreCandidate computes the match score for one candidate.
func scoreCandidate(query MatchQuery, cand *BookCandidate, cfg MatcherConfig) float64 {
	candTitle := normalizeMatch(cand.Title)
	queryTitle := normalizeMatch(query.Title)
	if candTitle == "" || queryTitle == "" {
		return 0
	}

	var score float64
	switch {
	case candTitle == queryTitle:
		score = cfg.ExactTitle
	case strings.Contains(candTitle, queryTitle):
		score = cfg.TitleInCandidate
	case strings.Contains(queryTitle, candTitle):
		score = cfg.CandidateInTitle
	default:
		score = jaccard(tokenSet(queryTitle), tokenSet(candTitle)) * cfg.JaccardWeight
	}
	if score == 0 {
		return 0
	}

	if author := normalizeMatch(query.Author); author != "" {
		if authorMatches(author, cand.AuthorNames) {
			score += cfg.AuthorBonus
		} else {
			score *= cfg.AuthorPenalty
		}
	}

	// Popularity nudges separate near-identical titles (reissues, omnibus
	// editions) without overriding title similarity.
	if cand.Rating > 0 {
		score += minFloat(0.05, cand.Rating/100)
	}
	if cand.UsersCount > 100 {
		score += minFloat(0.03, float64(cand.UsersCount)/100000)
	}

	if query.Year > 0 && cand.ReleaseYear > 0 {
		diff := query.Year - cand.ReleaseYear
		if diff >= -2 && diff <= 2 {
			score += cfg.YearBonus
		}
	}

	return score
}

// authorMatches reports whether the query author plausibly names one of the
// candidate's authors: containment either way, or any shared word.
func authorMatches(author string, candidates []string) bool {
	authorWords := tokenSetRaw(author)
	for _, name := range candidates {
		candAuthor := normalizeMatch(name)
		if candAuthor == "" {
			continue
		}
		if strings.Contains(candAuthor, author) || strings.Contains(author, candAuthor) {
			return true
		}
		for word := range tokenSetRaw(candAuthor) {
			if authorWords[word] {
				return true
			}
		}
	}
	return false
}

// CleanQuery strips stop words from a search query to improve catalog
// recall, but only when enough words remain to still identify the book.
func CleanQuery(query string) string {
	cleaned := normalizeMatch(query)
	words := strings.Fields(cleaned)
	if len(words) <= 2 {
		return cleaned
	}
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if !matchStopWords[w] {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return cleaned
	}
	return strings.Join(filtered, " ")
}

func normalizeMatch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenSet returns the word set with stop words removed.
func tokenSet(s string) map[string]bool {
	set := tokenSetRaw(s)
	for w := range set {
		if matchStopWords[w] {
			delete(set, w)
		}
	}
	return set
}

func tokenSetRaw(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// jaccard computes intersection over union for two word sets.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	if intersection == 0 {
		return 0
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

func morePopular(a, b *BookCandidate) bool {
	if a.UsersCount != b.UsersCount {
		return a.UsersCount > b.UsersCount
	}
	return a.Rating > b.Rating
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
