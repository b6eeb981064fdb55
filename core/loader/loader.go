// Package loader resolves translation source data into books and verses.
//
// The loader is a pure function of its inputs against the bundled source
// data: it performs no caching (that is core/verses' job) and holds no
// mutable state. Three source backends are supported, selected by the
// manifest's per-translation format field: JSON (optionally xz-compressed),
// SQLite databases, and Zefania XML.
package loader

import (
	"context"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/errors"
)

// Loader resolves (translation, book, chapter) coordinates to source data.
type Loader interface {
	// LoadBooks returns the ordered book list for a translation.
	LoadBooks(ctx context.Context, translationID string) ([]bible.Book, error)

	// LoadChapter returns the ordered verses of one chapter.
	LoadChapter(ctx context.Context, translationID, bookID string, chapter int) ([]bible.Verse, error)
}

// SourceLoader implements Loader against a catalog and a source data tree.
type SourceLoader struct {
	catalog *catalog.Catalog
	fsys    fs.FS
	dir     string // non-empty when directory-backed; required for sqlite sources
}

// New creates a loader reading sources from fsys (typically an embed.FS).
// SQLite sources are unavailable in this mode since the driver needs a real
// file path; use NewDir for directory trees containing databases.
func New(cat *catalog.Catalog, fsys fs.FS) *SourceLoader {
	return &SourceLoader{catalog: cat, fsys: fsys}
}

// NewDir creates a loader reading sources from a directory on disk.
func NewDir(cat *catalog.Catalog, dir string) *SourceLoader {
	return &SourceLoader{catalog: cat, fsys: os.DirFS(dir), dir: dir}
}

// LoadBooks implements Loader.
func (l *SourceLoader) LoadBooks(ctx context.Context, translationID string) ([]bible.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := l.catalog.Source(translationID)
	if err != nil {
		return nil, err
	}

	var books []bible.Book
	switch src.Format {
	case "json":
		books, err = l.jsonBooks(translationID, src)
	case "sqlite":
		books, err = l.sqliteBooks(ctx, translationID, src)
	case "zefania":
		books, err = l.zefaniaBooks(translationID, src)
	default:
		return nil, errors.NewSource(translationID, src.Format, "unsupported source format", nil)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(books, func(i, j int) bool { return books[i].Order < books[j].Order })
	return books, nil
}

// LoadChapter implements Loader. The book id must exist in the translation
// and chapter must lie in [1, book.ChapterCount]; violations surface as
// UnknownBook and ChapterOutOfRange rather than empty results.
func (l *SourceLoader) LoadChapter(ctx context.Context, translationID, bookID string, chapter int) ([]bible.Verse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := l.catalog.Source(translationID)
	if err != nil {
		return nil, err
	}

	books, err := l.LoadBooks(ctx, translationID)
	if err != nil {
		return nil, err
	}
	book := bible.FindBook(books, bookID)
	if book == nil {
		return nil, errors.NewUnknownBook(translationID, bookID)
	}
	if chapter < 1 || chapter > book.ChapterCount {
		return nil, errors.NewChapterRange(translationID, bookID, chapter, book.ChapterCount)
	}

	var verses []bible.Verse
	switch src.Format {
	case "json":
		verses, err = l.jsonChapter(translationID, src, bookID, chapter)
	case "sqlite":
		verses, err = l.sqliteChapter(ctx, translationID, src, bookID, chapter)
	case "zefania":
		verses, err = l.zefaniaChapter(translationID, src, bookID, chapter)
	default:
		return nil, errors.NewSource(translationID, src.Format, "unsupported source format", nil)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(verses, func(i, j int) bool { return verses[i].Number < verses[j].Number })
	return verses, nil
}

// readSourceFile reads one source file, transparently decompressing an .xz
// variant when the plain file is absent, and verifies its BLAKE3 checksum
// against the manifest when one is declared.
//
// Returns the decoded bytes and the name of the file actually read (checksum
// map keys use that name).
func (l *SourceLoader) readSourceFile(translationID string, src catalog.SourceRef, path string) ([]byte, string, error) {
	raw, name, err := l.readRaw(path)
	if err != nil {
		return nil, "", errors.NewSource(translationID, src.Format, "", err)
	}

	if want, ok := src.Blake3[baseName(name)]; ok {
		sum := blake3.Sum256(raw)
		if hex.EncodeToString(sum[:]) != strings.ToLower(want) {
			return nil, "", errors.NewSource(translationID, src.Format,
				"checksum mismatch for "+baseName(name), nil)
		}
	}

	if strings.HasSuffix(name, ".xz") {
		xzr, err := xz.NewReader(strings.NewReader(string(raw)))
		if err != nil {
			return nil, "", errors.NewSource(translationID, src.Format, "xz reader", err)
		}
		data, err := io.ReadAll(xzr)
		if err != nil {
			return nil, "", errors.NewSource(translationID, src.Format, "xz decompress", err)
		}
		return data, name, nil
	}
	return raw, name, nil
}

// readRaw reads path, falling back to path+".xz".
func (l *SourceLoader) readRaw(path string) ([]byte, string, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err == nil {
		return data, path, nil
	}
	xzPath := path + ".xz"
	if xzData, xzErr := fs.ReadFile(l.fsys, xzPath); xzErr == nil {
		return xzData, xzPath, nil
	}
	return nil, "", err
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
