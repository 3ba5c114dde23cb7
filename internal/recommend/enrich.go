// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package recommend

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/reelreads/reelreads/internal/cache"
	"github.com/reelreads/reelreads/internal/catalog"
	"github.com/reelreads/reelreads/internal/models"
)

// enrichBooks attaches catalog metadata to every book across all sets.
// Lookups fan out with bounded concurrency; each worker writes only its
// own book, so results land at their original index regardless of
// completion order. A failed lookup leaves that one book unenriched.
func (o *Orchestrator) enrichBooks(ctx context.Context, sets []models.RecommendationSet) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.MaxConcurrentEnrich)

	for si := range sets {
		for bi := range sets[si].Books {
			book := &sets[si].Books[bi]
			g.Go(func() error {
				o.enrichBook(gctx, book)
				return nil
			})
		}
	}
	// Workers never return errors; enrichment failures are absorbed
	// per book.
	_ = g.Wait()
}

// enrichBook resolves one book's catalog metadata: cache first, then the
// search variants until the matcher accepts a candidate.
func (o *Orchestrator) enrichBook(ctx context.Context, book *models.BookRecommendation) {
	key := cache.BookKey(book.Title, book.Author)

	var meta models.BookMetadata
	if o.cache.GetJSON(ctx, cache.NamespaceBooks, key, &meta) {
		applyMetadata(book, &meta)
		return
	}

	found, ok := o.lookupMetadata(ctx, book.Title, book.Author)
	if !ok {
		o.logger.Debug().Str("title", book.Title).Str("author", book.Author).
			Msg("no catalog match, book stays unenriched")
		return
	}

	o.cache.SetJSON(ctx, cache.NamespaceBooks, key, found)
	applyMetadata(book, found)
}

// searchVariants returns the catalog queries to try, in order. Broad
// queries follow precise ones: some catalogs rank better with the author
// first, others with noise words stripped.
func searchVariants(title, author string) []string {
	variants := make([]string, 0, 4)
	if author != "" {
		variants = append(variants, title+" "+author)
	}
	variants = append(variants, title)
	if cleaned := catalog.CleanQuery(title); cleaned != "" && !strings.EqualFold(cleaned, title) {
		variants = append(variants, cleaned)
	}
	if author != "" {
		variants = append(variants, author+" "+title)
	}
	return variants
}

// lookupMetadata runs the search variants against the catalog until the
// matcher accepts a candidate.
func (o *Orchestrator) lookupMetadata(ctx context.Context, title, author string) (*models.BookMetadata, bool) {
	query := catalog.MatchQuery{Title: title, Author: author}

	for _, variant := range searchVariants(title, author) {
		candidates, err := o.searcher.SearchBooks(ctx, variant)
		if err != nil {
			// Catalog down or rejecting: no point trying more variants.
			o.logger.Warn().Err(err).Str("title", title).Msg("catalog search failed")
			return nil, false
		}

		best, score, ok := catalog.SelectBestMatch(query, candidates, o.matcher)
		if !ok {
			continue
		}
		o.logger.Debug().Str("title", title).Str("matched", best.Title).
			Float64("score", score).Str("variant", variant).Msg("catalog match accepted")
		meta := best.Metadata()
		return &meta, true
	}
	return nil, false
}

// applyMetadata copies catalog fields onto the recommendation, keeping
// the LLM's title and author as the display identity.
func applyMetadata(book *models.BookRecommendation, meta *models.BookMetadata) {
	book.CoverURL = meta.CoverURL
	book.Rating = meta.Rating
	book.RatingsCount = meta.RatingsCount
	book.UsersCount = meta.UsersCount
	book.CatalogURL = meta.CatalogURL
	book.CatalogID = meta.CatalogID
	book.PublicationYear = meta.PublicationYear
	book.PageCount = meta.PageCount
	book.Genres = meta.Genres
	book.Description = meta.Description
}

// enrichPosters attaches poster URLs to the movie entries of every set.
// Disabled when no poster finder is configured.
func (o *Orchestrator) enrichPosters(ctx context.Context, movies []string, sets []models.RecommendationSet) {
	if o.posters == nil || len(movies) == 0 {
		return
	}

	urls := make(map[string]string, len(movies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.MaxConcurrentEnrich)

	results := make([]*models.PosterInfo, len(movies))
	for i, movie := range movies {
		g.Go(func() error {
			results[i] = o.findPoster(gctx, movie)
			return nil
		})
	}
	_ = g.Wait()

	for i, movie := range movies {
		if results[i] != nil {
			urls[movie] = results[i].PosterURL
		}
	}

	for si := range sets {
		for mi := range sets[si].Movies {
			if url, ok := urls[sets[si].Movies[mi].Title]; ok {
				sets[si].Movies[mi].PosterURL = url
			}
		}
	}
}

// findPoster resolves one movie's poster: cache first, then the finder.
// Failures and absent posters both yield nil.
func (o *Orchestrator) findPoster(ctx context.Context, title string) *models.PosterInfo {
	key := cache.PosterKey(title)

	var cached models.PosterInfo
	if o.cache.GetJSON(ctx, cache.NamespacePosters, key, &cached) {
		return &cached
	}

	info, err := o.posters.FindPoster(ctx, title)
	if err != nil {
		o.logger.Debug().Err(err).Str("title", title).Msg("poster lookup failed")
		return nil
	}
	if info == nil {
		return nil
	}

	o.cache.SetJSON(ctx, cache.NamespacePosters, key, info)
	return info
}
