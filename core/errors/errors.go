// Package errors provides standardized error types and helpers for the StudyBible data layer.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the data layer
var (
	// ErrCatalogUnavailable indicates the translation manifest could not be loaded.
	// Nothing in the data layer can proceed without the catalog.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrUnknownTranslation indicates a translation id not present in the catalog
	ErrUnknownTranslation = errors.New("unknown translation")
	// ErrUnknownBook indicates a book id not present in a translation
	ErrUnknownBook = errors.New("unknown book")
	// ErrChapterOutOfRange indicates a chapter number outside a book's range
	ErrChapterOutOfRange = errors.New("chapter out of range")
	// ErrMalformedSource indicates source data that failed to parse or verify
	ErrMalformedSource = errors.New("malformed source")
	// ErrNoCorrespondingBook indicates the secondary translation lacks the primary's book
	ErrNoCorrespondingBook = errors.New("no corresponding book")
)

// CatalogError reports a failure to load or parse the translation manifest.
type CatalogError struct {
	Source string // Manifest source description (path, "embedded", ...)
	Err    error  // Underlying error
}

func (e *CatalogError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("catalog unavailable: %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("catalog unavailable: %v", e.Err)
}

func (e *CatalogError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrCatalogUnavailable
}

// Is matches CatalogError against the catalog-unavailable sentinel even when
// it wraps a different underlying cause.
func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

// UnknownTranslationError reports a translation id missing from the catalog.
type UnknownTranslationError struct {
	TranslationID string
}

func (e *UnknownTranslationError) Error() string {
	return fmt.Sprintf("unknown translation: %s", e.TranslationID)
}

func (e *UnknownTranslationError) Unwrap() error {
	return ErrUnknownTranslation
}

// UnknownBookError reports a book id missing from a translation.
type UnknownBookError struct {
	TranslationID string
	BookID        string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("unknown book %q in translation %s", e.BookID, e.TranslationID)
}

func (e *UnknownBookError) Unwrap() error {
	return ErrUnknownBook
}

// ChapterRangeError reports a chapter number outside a book's valid range.
type ChapterRangeError struct {
	TranslationID string
	BookID        string
	Chapter       int
	MaxChapter    int
}

func (e *ChapterRangeError) Error() string {
	return fmt.Sprintf("chapter %d out of range for %s/%s (max %d)",
		e.Chapter, e.TranslationID, e.BookID, e.MaxChapter)
}

func (e *ChapterRangeError) Unwrap() error {
	return ErrChapterOutOfRange
}

// SourceError reports source data that failed to parse or failed integrity
// verification. The failure is scoped to one translation (and chapter, when
// known); it must never poison other cache keys.
type SourceError struct {
	TranslationID string
	Format        string // Source format ("json", "sqlite", "zefania")
	Detail        string
	Err           error
}

func (e *SourceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed %s source for %s: %s", e.Format, e.TranslationID, e.Detail)
	}
	return fmt.Sprintf("malformed %s source for %s: %v", e.Format, e.TranslationID, e.Err)
}

func (e *SourceError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedSource
}

// Is matches SourceError against the malformed-source sentinel.
func (e *SourceError) Is(target error) bool {
	return target == ErrMalformedSource
}

// NoCorrespondingBookError reports that the secondary translation in a
// parallel view has no book matching the primary's book id.
type NoCorrespondingBookError struct {
	PrimaryID   string
	SecondaryID string
	BookID      string
}

func (e *NoCorrespondingBookError) Error() string {
	return fmt.Sprintf("no corresponding book %q in %s (primary %s)",
		e.BookID, e.SecondaryID, e.PrimaryID)
}

func (e *NoCorrespondingBookError) Unwrap() error {
	return ErrNoCorrespondingBook
}

// Helper functions for creating common errors

// NewCatalog creates a CatalogError
func NewCatalog(source string, err error) *CatalogError {
	return &CatalogError{Source: source, Err: err}
}

// NewUnknownTranslation creates an UnknownTranslationError
func NewUnknownTranslation(translationID string) *UnknownTranslationError {
	return &UnknownTranslationError{TranslationID: translationID}
}

// NewUnknownBook creates an UnknownBookError
func NewUnknownBook(translationID, bookID string) *UnknownBookError {
	return &UnknownBookError{TranslationID: translationID, BookID: bookID}
}

// NewChapterRange creates a ChapterRangeError
func NewChapterRange(translationID, bookID string, chapter, maxChapter int) *ChapterRangeError {
	return &ChapterRangeError{
		TranslationID: translationID,
		BookID:        bookID,
		Chapter:       chapter,
		MaxChapter:    maxChapter,
	}
}

// NewSource creates a SourceError
func NewSource(translationID, format, detail string, err error) *SourceError {
	return &SourceError{
		TranslationID: translationID,
		Format:        format,
		Detail:        detail,
		Err:           err,
	}
}

// NewNoCorrespondingBook creates a NoCorrespondingBookError
func NewNoCorrespondingBook(primaryID, secondaryID, bookID string) *NoCorrespondingBookError {
	return &NoCorrespondingBookError{
		PrimaryID:   primaryID,
		SecondaryID: secondaryID,
		BookID:      bookID,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
