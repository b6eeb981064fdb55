package loader

import (
	"encoding/json"
	"path"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/errors"
)

// JSON source layout: the source path is a directory holding books.json and
// verses.json (either may be stored as .xz). books.json is an ordered array
// of book records; verses.json is a flat array of verse records filtered by
// book and chapter at load time.

// jsonVerse is one record in verses.json.
type jsonVerse struct {
	BookID  string `json:"book_id"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

func (l *SourceLoader) jsonBooks(translationID string, src catalog.SourceRef) ([]bible.Book, error) {
	data, name, err := l.readSourceFile(translationID, src, path.Join(src.Path, "books.json"))
	if err != nil {
		return nil, err
	}

	var books []bible.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, errors.NewSource(translationID, "json", "parsing "+name, err)
	}
	if len(books) == 0 {
		return nil, errors.NewSource(translationID, "json", "source declares no books", nil)
	}
	return books, nil
}

func (l *SourceLoader) jsonChapter(translationID string, src catalog.SourceRef, bookID string, chapter int) ([]bible.Verse, error) {
	data, name, err := l.readSourceFile(translationID, src, path.Join(src.Path, "verses.json"))
	if err != nil {
		return nil, err
	}

	var all []jsonVerse
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, errors.NewSource(translationID, "json", "parsing "+name, err)
	}

	var verses []bible.Verse
	for _, v := range all {
		if v.BookID == bookID && v.Chapter == chapter {
			verses = append(verses, bible.Verse{Number: v.Verse, Text: v.Text})
		}
	}
	return verses, nil
}
