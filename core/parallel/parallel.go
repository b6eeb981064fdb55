// Package parallel coordinates the side-by-side view of two translations.
//
// The coordinator tracks a primary translation and an optional secondary,
// mirroring the primary's book/chapter coordinates into the secondary. Both
// sides load through the shared verse store, so their chapter data live under
// distinct cache keys and a failing secondary never blocks the primary.
// ParallelState is transient in-memory session state; nothing here persists.
package parallel

import (
	"context"
	"sync"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/errors"
	"github.com/FocuswithJustin/StudyBible/core/verses"
)

// View is the outcome of a coordinator operation: the resulting state plus
// the verses loaded for each side. SecondaryErr carries secondary-side
// failures (NoCorrespondingBook, ChapterOutOfRange, ...) without failing the
// primary side.
type View struct {
	State        bible.ParallelState
	Primary      []bible.Verse
	Secondary    []bible.Verse
	SecondaryErr error
}

// Coordinator mirrors primary navigation into a secondary translation.
type Coordinator struct {
	catalog *catalog.Catalog
	store   *verses.Store

	mu    sync.Mutex
	state bible.ParallelState
}

// New creates a coordinator over the given catalog and store.
func New(cat *catalog.Catalog, store *verses.Store) *Coordinator {
	return &Coordinator{catalog: cat, store: store}
}

// Current returns a snapshot of the coordination state.
func (c *Coordinator) Current() bible.ParallelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetPrimary moves the primary translation to the given coordinates and
// loads that chapter. If a secondary is active, exactly one secondary load
// is issued at the same coordinates, concurrently with and independent of
// the primary load.
//
// Book correspondence across translations is by matching book id only; a
// secondary missing the book surfaces NoCorrespondingBook in SecondaryErr,
// and a secondary with fewer chapters surfaces ChapterOutOfRange. Neither is
// guessed around.
func (c *Coordinator) SetPrimary(ctx context.Context, translationID, bookID string, chapter int) (View, error) {
	if !c.catalog.Has(translationID) {
		return View{State: c.Current()}, errors.NewUnknownTranslation(translationID)
	}

	c.mu.Lock()
	c.state.PrimaryID = translationID
	c.state.BookID = bookID
	c.state.Chapter = chapter
	state := c.state
	c.mu.Unlock()

	type secondaryResult struct {
		verses []bible.Verse
		err    error
	}
	var secondaryCh chan secondaryResult
	if state.HasSecondary() {
		secondaryCh = make(chan secondaryResult, 1)
		go func() {
			vs, err := c.loadSecondary(ctx, state)
			secondaryCh <- secondaryResult{verses: vs, err: err}
		}()
	}

	view := View{State: state}
	primary, err := c.store.GetChapter(ctx, translationID, bookID, chapter)
	view.Primary = primary

	if secondaryCh != nil {
		res := <-secondaryCh
		view.Secondary = res.verses
		view.SecondaryErr = res.err
	}

	return view, err
}

// SetSecondary activates (or, with an empty id, clears) the secondary
// translation. When activated with primary coordinates already set, the
// secondary's chapter at those coordinates is requested immediately.
func (c *Coordinator) SetSecondary(ctx context.Context, translationID string) (View, error) {
	if translationID != "" && !c.catalog.Has(translationID) {
		return View{State: c.Current()}, errors.NewUnknownTranslation(translationID)
	}

	c.mu.Lock()
	c.state.SecondaryID = translationID
	state := c.state
	c.mu.Unlock()

	view := View{State: state}
	if translationID == "" || state.BookID == "" {
		return view, nil
	}

	vs, err := c.loadSecondary(ctx, state)
	view.Secondary = vs
	view.SecondaryErr = err
	return view, nil
}

// loadSecondary resolves the secondary's chapter at the shared coordinates.
func (c *Coordinator) loadSecondary(ctx context.Context, state bible.ParallelState) ([]bible.Verse, error) {
	books, err := c.store.GetBooks(ctx, state.SecondaryID)
	if err != nil {
		return nil, err
	}
	if bible.FindBook(books, state.BookID) == nil {
		return nil, errors.NewNoCorrespondingBook(state.PrimaryID, state.SecondaryID, state.BookID)
	}
	return c.store.GetChapter(ctx, state.SecondaryID, state.BookID, state.Chapter)
}
