package loader

import (
	"context"
	"database/sql"
	"path/filepath"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/errors"
	"github.com/FocuswithJustin/StudyBible/core/sqlite"
)

// SQLite source schema:
//
//	books(id TEXT PRIMARY KEY, name TEXT, abbreviation TEXT,
//	      testament TEXT, book_order INTEGER, chapter_count INTEGER)
//	verses(book_id TEXT, chapter INTEGER, verse INTEGER, text TEXT)
//
// Databases are always opened read-only. The driver needs a real file path,
// so sqlite sources require a directory-backed loader (NewDir).

func (l *SourceLoader) openSource(translationID string, src catalog.SourceRef) (*sql.DB, error) {
	if l.dir == "" {
		return nil, errors.NewSource(translationID, "sqlite",
			"sqlite sources require a directory-backed loader", nil)
	}
	db, err := sqlite.OpenReadOnly(filepath.Join(l.dir, filepath.FromSlash(src.Path)))
	if err != nil {
		return nil, errors.NewSource(translationID, "sqlite", "open database", err)
	}
	return db, nil
}

func (l *SourceLoader) sqliteBooks(ctx context.Context, translationID string, src catalog.SourceRef) ([]bible.Book, error) {
	db, err := l.openSource(translationID, src)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, abbreviation, testament, book_order, chapter_count
		 FROM books ORDER BY book_order`)
	if err != nil {
		return nil, errors.NewSource(translationID, "sqlite", "query books", err)
	}
	defer rows.Close()

	var books []bible.Book
	for rows.Next() {
		var b bible.Book
		var testament string
		if err := rows.Scan(&b.ID, &b.Name, &b.Abbreviation, &testament, &b.Order, &b.ChapterCount); err != nil {
			return nil, errors.NewSource(translationID, "sqlite", "scan book row", err)
		}
		b.Testament = bible.Testament(testament)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewSource(translationID, "sqlite", "iterate books", err)
	}
	if len(books) == 0 {
		return nil, errors.NewSource(translationID, "sqlite", "source declares no books", nil)
	}
	return books, nil
}

func (l *SourceLoader) sqliteChapter(ctx context.Context, translationID string, src catalog.SourceRef, bookID string, chapter int) ([]bible.Verse, error) {
	db, err := l.openSource(translationID, src)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT verse, text FROM verses WHERE book_id = ? AND chapter = ? ORDER BY verse`,
		bookID, chapter)
	if err != nil {
		return nil, errors.NewSource(translationID, "sqlite", "query verses", err)
	}
	defer rows.Close()

	var verses []bible.Verse
	for rows.Next() {
		var v bible.Verse
		if err := rows.Scan(&v.Number, &v.Text); err != nil {
			return nil, errors.NewSource(translationID, "sqlite", "scan verse row", err)
		}
		verses = append(verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewSource(translationID, "sqlite", "iterate verses", err)
	}
	return verses, nil
}
