// Package bible defines the domain types shared across the StudyBible data layer:
// translations, books, verses, chapter keys, search results, and parallel-view state.
// All values are plain data; ownership and caching rules live in core/verses.
package bible

import "fmt"

// Testament identifies which testament a book belongs to.
type Testament string

const (
	// OldTestament covers Genesis through Malachi.
	OldTestament Testament = "OT"
	// NewTestament covers Matthew through Revelation.
	NewTestament Testament = "NT"
)

// Translation describes one Bible edition. Immutable after catalog load.
type Translation struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Language     string `json:"language"`
	LanguageName string `json:"language_name,omitempty"`
	Description  string `json:"description,omitempty"`
	Bundled      bool   `json:"bundled,omitempty"`
	Priority     int    `json:"priority,omitempty"`
}

// Book describes a book within one translation. Order defines the canonical
// book sequence; ids are stable strings (e.g. "gen", "exo").
type Book struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation,omitempty"`
	Testament    Testament `json:"testament,omitempty"`
	Order        int       `json:"order"`
	ChapterCount int       `json:"chapter_count"`
}

// Verse is a single verse within a chapter. Number is 1-based and unique
// within its chapter.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// ChapterKey addresses one chapter of one translation. It is the cache key
// for verse data; equality is exact-match with no normalization.
type ChapterKey struct {
	TranslationID string
	BookID        string
	Chapter       int
}

// String returns the canonical "translation/book/chapter" form.
func (k ChapterKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.TranslationID, k.BookID, k.Chapter)
}

// SearchResult is one matching verse from a search. Results are ordered by
// (book ordinal, chapter, verse).
type SearchResult struct {
	TranslationID string `json:"translation_id"`
	BookID        string `json:"book_id"`
	BookOrder     int    `json:"book_order"`
	Chapter       int    `json:"chapter"`
	Verse         int    `json:"verse"`
	Text          string `json:"text"`
}

// Reference identifies a passage position for navigation.
type Reference struct {
	BookID  string `json:"book_id"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse,omitempty"` // 0 = whole chapter
}

// ParallelState is the transient coordination state of a parallel view:
// the primary translation, an optional secondary, and the shared passage
// coordinates. It is in-memory session state, never persisted.
type ParallelState struct {
	PrimaryID   string `json:"primary_id"`
	SecondaryID string `json:"secondary_id,omitempty"`
	BookID      string `json:"book_id"`
	Chapter     int    `json:"chapter"`
}

// HasSecondary reports whether a secondary translation is active.
func (s ParallelState) HasSecondary() bool {
	return s.SecondaryID != ""
}

// FindBook returns the book with the given id from books, or nil.
// Matching is by exact id.
func FindBook(books []Book, bookID string) *Book {
	for i := range books {
		if books[i].ID == bookID {
			return &books[i]
		}
	}
	return nil
}

// CopyVerses returns a fresh slice so callers cannot mutate cached data.
func CopyVerses(verses []Verse) []Verse {
	if verses == nil {
		return nil
	}
	out := make([]Verse, len(verses))
	copy(out, verses)
	return out
}

// CopyBooks returns a fresh slice so callers cannot mutate cached data.
func CopyBooks(books []Book) []Book {
	if books == nil {
		return nil
	}
	out := make([]Book, len(books))
	copy(out, books)
	return out
}
