// Package verses provides the in-memory verse store: a cache-or-load layer
// over a Loader, keyed by translation id (book lists) and chapter key
// (verse lists).
//
// The store's single correctness requirement is load deduplication: for any
// key there is at most one loader invocation in flight, and every caller
// waiting on that key observes the result of exactly that invocation. The
// cache never expires entries and has no eviction policy; the bundled corpus
// is small and fixed, so the full working set fits in memory.
package verses

import (
	"context"
	"sync"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/errors"
	"github.com/FocuswithJustin/StudyBible/core/loader"
)

// flight is a shared handle for one in-flight load. val and err are written
// exactly once, before done is closed; waiters read them only after done.
type flight[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Stats contains store statistics.
type Stats struct {
	Hits     int64
	Misses   int64
	Loads    int64
	Books    int
	Chapters int
}

// Store is the shared verse cache. All mutation goes through the
// cache-or-load path; reads return copies so callers can never alias
// cache internals.
type Store struct {
	catalog *catalog.Catalog
	loader  loader.Loader

	mu             sync.Mutex
	books          map[string][]bible.Book
	chapters       map[bible.ChapterKey][]bible.Verse
	bookFlights    map[string]*flight[[]bible.Book]
	chapterFlights map[bible.ChapterKey]*flight[[]bible.Verse]
	stats          Stats
}

// New creates a store backed by the given catalog and loader. The catalog is
// consulted before any load so unknown translation ids fail fast without
// creating partial cache entries.
func New(cat *catalog.Catalog, l loader.Loader) *Store {
	return &Store{
		catalog:        cat,
		loader:         l,
		books:          make(map[string][]bible.Book),
		chapters:       make(map[bible.ChapterKey][]bible.Verse),
		bookFlights:    make(map[string]*flight[[]bible.Book]),
		chapterFlights: make(map[bible.ChapterKey]*flight[[]bible.Verse]),
	}
}

// GetBooks returns the ordered book list for a translation, loading it on
// first access. Concurrent calls for the same translation collapse into one
// loader invocation.
func (s *Store) GetBooks(ctx context.Context, translationID string) ([]bible.Book, error) {
	if !s.catalog.Has(translationID) {
		return nil, errors.NewUnknownTranslation(translationID)
	}

	s.mu.Lock()
	if cached, ok := s.books[translationID]; ok {
		s.stats.Hits++
		s.mu.Unlock()
		return bible.CopyBooks(cached), nil
	}
	if fl, ok := s.bookFlights[translationID]; ok {
		s.stats.Hits++
		s.mu.Unlock()
		return awaitBooks(ctx, fl)
	}
	s.stats.Misses++
	s.stats.Loads++
	fl := &flight[[]bible.Book]{done: make(chan struct{})}
	s.bookFlights[translationID] = fl
	s.mu.Unlock()

	go s.runBookLoad(translationID, fl)
	return awaitBooks(ctx, fl)
}

// GetChapter returns the ordered verses for one chapter, loading on first
// access with the same deduplication semantics as GetBooks.
func (s *Store) GetChapter(ctx context.Context, translationID, bookID string, chapter int) ([]bible.Verse, error) {
	if !s.catalog.Has(translationID) {
		return nil, errors.NewUnknownTranslation(translationID)
	}

	key := bible.ChapterKey{TranslationID: translationID, BookID: bookID, Chapter: chapter}

	s.mu.Lock()
	if cached, ok := s.chapters[key]; ok {
		s.stats.Hits++
		s.mu.Unlock()
		return bible.CopyVerses(cached), nil
	}
	if fl, ok := s.chapterFlights[key]; ok {
		s.stats.Hits++
		s.mu.Unlock()
		return awaitVerses(ctx, fl)
	}
	s.stats.Misses++
	s.stats.Loads++
	fl := &flight[[]bible.Verse]{done: make(chan struct{})}
	s.chapterFlights[key] = fl
	s.mu.Unlock()

	go s.runChapterLoad(key, fl)
	return awaitVerses(ctx, fl)
}

// Invalidate drops all cached books and chapters for a translation. In-flight
// loads are left to complete; when they finish they populate fresh entries.
// Only used if a translation's source changes at runtime.
func (s *Store) Invalidate(translationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.books, translationID)
	for key := range s.chapters {
		if key.TranslationID == translationID {
			delete(s.chapters, key)
		}
	}
}

// Stats returns a snapshot of store statistics.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	st.Books = len(s.books)
	st.Chapters = len(s.chapters)
	return st
}

// runBookLoad performs the single loader invocation for a book-list key.
// It runs detached from caller contexts: a caller abandoning its wait must
// not cancel the load, which still completes and populates the cache.
func (s *Store) runBookLoad(translationID string, fl *flight[[]bible.Book]) {
	books, err := s.loader.LoadBooks(context.Background(), translationID)

	s.mu.Lock()
	if err == nil {
		s.books[translationID] = books
	}
	delete(s.bookFlights, translationID)
	s.mu.Unlock()

	// Errors are delivered to waiters but never cached; a later call
	// re-attempts the load.
	fl.val, fl.err = books, err
	close(fl.done)
}

func (s *Store) runChapterLoad(key bible.ChapterKey, fl *flight[[]bible.Verse]) {
	verses, err := s.loader.LoadChapter(context.Background(), key.TranslationID, key.BookID, key.Chapter)

	s.mu.Lock()
	if err == nil {
		s.chapters[key] = verses
	}
	delete(s.chapterFlights, key)
	s.mu.Unlock()

	fl.val, fl.err = verses, err
	close(fl.done)
}

func awaitBooks(ctx context.Context, fl *flight[[]bible.Book]) ([]bible.Book, error) {
	select {
	case <-fl.done:
		if fl.err != nil {
			return nil, fl.err
		}
		return bible.CopyBooks(fl.val), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func awaitVerses(ctx context.Context, fl *flight[[]bible.Verse]) ([]bible.Verse, error) {
	select {
	case <-fl.done:
		if fl.err != nil {
			return nil, fl.err
		}
		return bible.CopyVerses(fl.val), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
