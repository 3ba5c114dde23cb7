// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package models

// Preferences captures the optional taste constraints a user submits
// alongside their movie list.
type Preferences struct {
	// Mood is a free-text mood alignment hint (e.g. "dark", "uplifting").
	Mood string `json:"mood,omitempty"`

	// Pace is a pacing preference (e.g. "slow burn", "fast").
	Pace string `json:"pace,omitempty"`

	// GenrePreferences lists genres to favor.
	GenrePreferences []string `json:"genre_preferences,omitempty"`

	// GenreBlocklist lists genres to avoid.
	GenreBlocklist []string `json:"genre_blocklist,omitempty"`
}

// RecommendationRequest is the body of POST /api/v1/recommend.
type RecommendationRequest struct {
	Movies      []string     `json:"movies" validate:"required,min=1,dive,required"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// RecommendationMode selects how movie taste is analyzed.
const (
	// ModeUnified analyzes the overall taste profile across all movies.
	ModeUnified = "unified"
	// ModeIndividual produces separate recommendations per movie.
	ModeIndividual = "individual"
)

// TasteProfile is the LLM-derived aesthetic profile of the user's movie taste.
type TasteProfile struct {
	Themes                []string `json:"themes"`
	NarrativeStyle        string   `json:"narrative_style"`
	EmotionalTone         string   `json:"emotional_tone"`
	GenreFusion           string   `json:"genre_fusion"`
	CharacterPreferences  string   `json:"character_preferences"`
	ArtisticSensibilities string   `json:"artistic_sensibilities"`
	ConfidenceScore       float64  `json:"confidence_score"`
}

// BookRecommendation is one recommended book. Title, Author and Reason come
// from the LLM; the remaining fields are catalog enrichment and stay zero
// when no catalog match was accepted.
type BookRecommendation struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Reason          string  `json:"reason,omitempty"`
	TasteMatchScore float64 `json:"taste_match_score,omitempty"`
	PrimaryAppeal   string  `json:"primary_appeal,omitempty"`

	// Catalog enrichment (books namespace).
	CoverURL        string   `json:"cover_url,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	RatingsCount    int      `json:"ratings_count,omitempty"`
	UsersCount      int      `json:"users_count,omitempty"`
	CatalogURL      string   `json:"catalog_url,omitempty"`
	CatalogID       int      `json:"catalog_id,omitempty"`
	PublicationYear int      `json:"publication_year,omitempty"`
	PageCount       int      `json:"page_count,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	Description     string   `json:"description,omitempty"`
}

// MovieInfo is one requested movie with optional poster enrichment.
type MovieInfo struct {
	Title     string `json:"title"`
	PosterURL string `json:"poster_url,omitempty"`
}

// RecommendationSet groups the books recommended for one taste analysis.
// In unified mode there is a single set covering all movies; in individual
// mode there is one set per movie.
type RecommendationSet struct {
	MovieSummary string               `json:"movie_summary"`
	Movies       []MovieInfo          `json:"movies,omitempty"`
	Books        []BookRecommendation `json:"books"`
	TasteProfile *TasteProfile        `json:"taste_profile,omitempty"`
}

// RecommendationInsights summarizes the recommendation batch for display.
type RecommendationInsights struct {
	TotalMoviesAnalyzed      int      `json:"total_movies_analyzed"`
	DominantThemes           []string `json:"dominant_themes"`
	GenreDiversityScore      float64  `json:"genre_diversity_score"`
	RecommendationConfidence float64  `json:"recommendation_confidence"`
}

// RecommendationResult is the complete payload cached under the
// recommendations namespace and returned to the client.
type RecommendationResult struct {
	Recommendations []RecommendationSet     `json:"recommendations"`
	Insights        *RecommendationInsights `json:"insights,omitempty"`
	ProcessingTime  float64                 `json:"processing_time"`
	CacheHit        bool                    `json:"cache_hit"`
	Degraded        bool                    `json:"degraded,omitempty"`
}

// BookMetadata is the derived catalog subset persisted in the books
// namespace. Only this subset of a search candidate is ever cached.
type BookMetadata struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Authors         []string `json:"authors,omitempty"`
	CoverURL        string   `json:"cover_url,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	RatingsCount    int      `json:"ratings_count,omitempty"`
	UsersCount      int      `json:"users_count,omitempty"`
	CatalogURL      string   `json:"catalog_url,omitempty"`
	CatalogID       int      `json:"catalog_id,omitempty"`
	PublicationYear int      `json:"publication_year,omitempty"`
	PageCount       int      `json:"page_count,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	Description     string   `json:"description,omitempty"`
}

// PosterInfo is the derived poster subset persisted in the posters namespace.
type PosterInfo struct {
	Title     string `json:"title"`
	PosterURL string `json:"poster_url,omitempty"`
	Year      int    `json:"year,omitempty"`
}
