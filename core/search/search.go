// Package search implements the bounded verse search.
//
// Matching is case-insensitive substring containment on verse text. The scan
// scope is deliberately bounded for responsiveness: only the first 5 books
// (by ordinal) and the first 3 chapters of each are searched. The bound is a
// fixed policy of the engine, not a caller knob.
package search

import (
	"context"
	"strings"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/verses"
)

const (
	// maxBooks is the number of leading books scanned per search.
	maxBooks = 5
	// maxChapters is the number of leading chapters scanned per book.
	maxChapters = 3
)

// Engine scans chapters through the shared verse store, so repeated searches
// hit the cache and concurrent searches share in-flight loads.
type Engine struct {
	store *verses.Store
}

// NewEngine creates a search engine over the given store.
func NewEngine(store *verses.Store) *Engine {
	return &Engine{store: store}
}

// Search returns all matches for query within the bounded scan scope, in
// canonical (book ordinal, chapter, verse) order. An empty query yields an
// empty result set. An unknown translation id is an error; a single chapter
// that fails to load is skipped so one bad chapter cannot sink the whole
// search.
func (e *Engine) Search(ctx context.Context, translationID, query string) ([]bible.SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	books, err := e.store.GetBooks(ctx, translationID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var results []bible.SearchResult

	for i, book := range books {
		if i >= maxBooks {
			break
		}

		chapters := book.ChapterCount
		if chapters > maxChapters {
			chapters = maxChapters
		}

		for chapter := 1; chapter <= chapters; chapter++ {
			vs, err := e.store.GetChapter(ctx, translationID, book.ID, chapter)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				continue
			}

			for _, v := range vs {
				if strings.Contains(strings.ToLower(v.Text), needle) {
					results = append(results, bible.SearchResult{
						TranslationID: translationID,
						BookID:        book.ID,
						BookOrder:     book.Order,
						Chapter:       chapter,
						Verse:         v.Number,
						Text:          v.Text,
					})
				}
			}
		}
	}

	return results, nil
}
