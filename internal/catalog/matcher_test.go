// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package catalog

import (
	"testing"
)

func TestSelectBestMatchExactTitle(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "Dune Messiah", AuthorNames: []string{"Frank Herbert"}, UsersCount: 50000},
		{Title: "Dune", AuthorNames: []string{"Frank Herbert"}, UsersCount: 300000, Rating: 4.2},
		{Title: "The Winds of Dune", AuthorNames: []string{"Brian Herbert"}, UsersCount: 2000},
	}

	best, score, ok := SelectBestMatch(MatchQuery{Title: "Dune", Author: "Frank Herbert"}, candidates, DefaultMatcherConfig())
	if !ok {
		t.Fatal("expected a match")
	}
	if best.Title != "Dune" {
		t.Errorf("expected exact title to win, got %q", best.Title)
	}
	if score < 1.0 {
		t.Errorf("exact title plus author bonus should exceed 1.0, got %g", score)
	}
}

func TestSelectBestMatchEmptyCandidates(t *testing.T) {
	if _, _, ok := SelectBestMatch(MatchQuery{Title: "Anything"}, nil, DefaultMatcherConfig()); ok {
		t.Error("empty candidate list should never match")
	}
}

func TestSelectBestMatchRejectsUnrelated(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "Cooking for Beginners", AuthorNames: []string{"Jane Doe"}},
		{Title: "Gardening Monthly Annual", AuthorNames: []string{"John Roe"}},
	}

	if _, _, ok := SelectBestMatch(MatchQuery{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"}, candidates, DefaultMatcherConfig()); ok {
		t.Error("unrelated candidates should all score below the threshold")
	}
}

func TestSelectBestMatchContainment(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "The Name of the Wind (Kingkiller Chronicle, Book 1)", AuthorNames: []string{"Patrick Rothfuss"}},
	}

	best, _, ok := SelectBestMatch(MatchQuery{Title: "The Name of the Wind", Author: "Patrick Rothfuss"}, candidates, DefaultMatcherConfig())
	if !ok {
		t.Fatal("expected containment match")
	}
	if best.Title != candidates[0].Title {
		t.Errorf("unexpected match: %q", best.Title)
	}
}

func TestSelectBestMatchAuthorPenalty(t *testing.T) {
	// Same title, wrong author vs. partial title, right author.
	candidates := []BookCandidate{
		{Title: "Circe", AuthorNames: []string{"Someone Else"}},
		{Title: "Circe: A Novel", AuthorNames: []string{"Madeline Miller"}},
	}

	best, _, ok := SelectBestMatch(MatchQuery{Title: "Circe", Author: "Madeline Miller"}, candidates, DefaultMatcherConfig())
	if !ok {
		t.Fatal("expected a match")
	}
	// 1.00 * 0.7 = 0.70 for the wrong author; 0.90 + 0.20 = 1.10 for the
	// right one.
	if best.AuthorNames[0] != "Madeline Miller" {
		t.Errorf("author match should outweigh exact title with wrong author, got %q", best.AuthorNames[0])
	}
}

func TestSelectBestMatchNoAuthorSkipsAuthorSignals(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "Solaris", AuthorNames: []string{"Stanislaw Lem"}},
	}

	_, withAuthor, _ := SelectBestMatch(MatchQuery{Title: "Solaris", Author: "Stanislaw Lem"}, candidates, DefaultMatcherConfig())
	_, without, _ := SelectBestMatch(MatchQuery{Title: "Solaris"}, candidates, DefaultMatcherConfig())

	if withAuthor <= without {
		t.Errorf("author bonus should raise the score: with=%g without=%g", withAuthor, without)
	}
	if without < 1.0 {
		t.Errorf("exact title without author info should not be penalized, got %g", without)
	}
}

func TestSelectBestMatchJaccardOverlap(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "Guards! Guards!", AuthorNames: []string{"Terry Pratchett"}},
		{Title: "The Colour of Magic", AuthorNames: []string{"Terry Pratchett"}},
	}

	// Word overlap only: "colour magic discworld" vs "colour magic".
	best, _, ok := SelectBestMatch(MatchQuery{Title: "Colour Magic Discworld"}, candidates, DefaultMatcherConfig())
	if !ok {
		t.Fatal("expected a token-overlap match")
	}
	if best.Title != "The Colour of Magic" {
		t.Errorf("expected overlap winner, got %q", best.Title)
	}
}

func TestSelectBestMatchTieBreaksOnPopularity(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "Foundation", AuthorNames: []string{"Isaac Asimov"}},
		{Title: "Foundation", AuthorNames: []string{"Isaac Asimov"}, UsersCount: 90},
	}

	// Neither reaches the users_count>100 bonus, so the scores tie and the
	// popularity tie-break applies.
	best, _, ok := SelectBestMatch(MatchQuery{Title: "Foundation", Author: "Isaac Asimov"}, candidates, DefaultMatcherConfig())
	if !ok {
		t.Fatal("expected a match")
	}
	if best.UsersCount != 90 {
		t.Error("ties should break toward the more popular candidate")
	}
}

func TestSelectBestMatchDeterministic(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "Annihilation", AuthorNames: []string{"Jeff VanderMeer"}, UsersCount: 80000, Rating: 3.9},
		{Title: "Authority", AuthorNames: []string{"Jeff VanderMeer"}, UsersCount: 40000, Rating: 3.7},
	}
	query := MatchQuery{Title: "Annihilation", Author: "Jeff VanderMeer"}

	first, firstScore, _ := SelectBestMatch(query, candidates, DefaultMatcherConfig())
	for i := 0; i < 10; i++ {
		got, score, _ := SelectBestMatch(query, candidates, DefaultMatcherConfig())
		if got.Title != first.Title || score != firstScore {
			t.Fatal("matcher must be deterministic for identical inputs")
		}
	}
}

func TestSelectBestMatchThresholdConfigurable(t *testing.T) {
	candidates := []BookCandidate{
		{Title: "A Wizard of Earthsea Omnibus Collected Tales", AuthorNames: []string{"Ursula K. Le Guin"}},
	}
	query := MatchQuery{Title: "Wizard Earthsea"}

	strict := DefaultMatcherConfig()
	strict.MinMatchScore = 0.99
	if _, _, ok := SelectBestMatch(query, candidates, strict); ok {
		t.Error("strict threshold should reject a partial match")
	}

	lenient := DefaultMatcherConfig()
	lenient.MinMatchScore = 0.05
	if _, _, ok := SelectBestMatch(query, candidates, lenient); !ok {
		t.Error("default threshold should accept a partial match")
	}
}

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Lord of the Rings", "lord rings"},
		{"Of Mice and Men", "mice and men"},
		// Two words or fewer are left intact even when they are stop words.
		{"The Road", "the road"},
		{"It", "it"},
		{"  Mixed   CASE  Title of Things ", "mixed case title things"},
	}
	for _, tt := range tests {
		if got := CleanQuery(tt.in); got != tt.want {
			t.Errorf("CleanQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
