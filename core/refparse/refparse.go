// Package refparse parses human-entered scripture references ("Gen 1:1",
// "John 3:16-18", "Psalms 23") into book id, chapter, and verse coordinates.
package refparse

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Range is a parsed scripture reference, possibly spanning verses or
// chapters. Use ID to resolve Book to the catalog's stable lowercase id.
type Range struct {
	Book         string `parser:"@Book"`
	ChapterStart *int   `parser:"( @Number"`
	VerseStart   *int   `parser:"( ':' @Number )?"`
	ChapterEnd   *int   `parser:"( '-' ( @Number"`
	VerseEnd     *int   `parser:"    ( ':' @Number )? )? )? )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Book names: optional leading ordinal, words, optional trailing period.
	// Examples: Genesis, Gen, Gen., 1John, 1 John, Song of Solomon
	{Name: "Book", Pattern: `(?:\d\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[Range](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a scripture reference. Supported shapes:
//
//	"Genesis 1:1"     book chapter:verse
//	"Gen 1:1"         abbreviated book
//	"Gen.1.1"         dot separators
//	"Genesis 1:1-5"   verse range within a chapter
//	"Genesis 1:1-2:5" range across chapters
//	"Genesis 1-2"     chapter range
//	"Genesis 1"       full chapter
//	"Genesis"         full book
func Parse(input string) (*Range, error) {
	ref, err := refParser.ParseString("", normalizeSeparators(input))
	if err != nil {
		return nil, fmt.Errorf("parse reference %q: %w", input, err)
	}

	// The grammar reads "Genesis 1:1-5" as chapter 1:1 through chapter 5.
	// When a start verse is present the number after the dash is a verse.
	if ref.VerseStart != nil && ref.ChapterEnd != nil && ref.VerseEnd == nil {
		ref.VerseEnd = ref.ChapterEnd
		ref.ChapterEnd = nil
	}

	return ref, nil
}

// normalizeSeparators rewrites dot-separated references ("Gen.1.1") into the
// canonical "Gen 1:1" shape before parsing.
func normalizeSeparators(input string) string {
	parts := strings.Split(input, ".")
	if len(parts) < 2 {
		return input
	}

	rest := parts[1:]
	for _, p := range rest {
		p = strings.TrimSpace(p)
		for _, c := range p {
			if c < '0' || c > '9' {
				return input
			}
		}
	}

	if len(rest) == 1 {
		return parts[0] + " " + rest[0]
	}
	return parts[0] + " " + rest[0] + ":" + strings.Join(rest[1:], ":")
}

// String renders the reference in canonical "Book C:V-C:V" form.
func (r *Range) String() string {
	if r.ChapterStart == nil {
		return r.Book
	}

	var sb strings.Builder
	sb.WriteString(r.Book)
	fmt.Fprintf(&sb, " %d", *r.ChapterStart)
	if r.VerseStart != nil {
		fmt.Fprintf(&sb, ":%d", *r.VerseStart)
	}
	if r.ChapterEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.ChapterEnd)
		if r.VerseEnd != nil {
			fmt.Fprintf(&sb, ":%d", *r.VerseEnd)
		}
	} else if r.VerseEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.VerseEnd)
	}
	return sb.String()
}

// IsRange reports whether the reference spans multiple verses or chapters.
func (r *Range) IsRange() bool {
	return r.ChapterEnd != nil || r.VerseEnd != nil
}

// IsChapterOnly reports whether the reference names whole chapter(s).
func (r *Range) IsChapterOnly() bool {
	return r.ChapterStart != nil && r.VerseStart == nil
}

// IsBookOnly reports whether the reference names an entire book.
func (r *Range) IsBookOnly() bool {
	return r.ChapterStart == nil
}

// ID resolves the parsed book name to the stable lowercase book id.
func (r *Range) ID() string {
	return BookID(r.Book)
}

// Chapter returns the starting chapter, defaulting to 1 for book-only
// references.
func (r *Range) Chapter() int {
	if r.ChapterStart == nil {
		return 1
	}
	return *r.ChapterStart
}

// BookID resolves a book name or common abbreviation to the stable lowercase
// id used by translation sources. Unrecognized names are lowercased and
// stripped of spaces so exotic ids still round-trip.
func BookID(book string) string {
	book = strings.TrimSuffix(book, ".")
	book = strings.TrimSpace(book)
	key := strings.ToLower(book)

	if id, ok := bookIDs[key]; ok {
		return id
	}
	return strings.ReplaceAll(key, " ", "")
}

// bookIDs maps lowercased names and abbreviations to stable book ids.
var bookIDs = map[string]string{
	"gen": "gen", "genesis": "gen",
	"exod": "exo", "exo": "exo", "exodus": "exo", "ex": "exo",
	"lev": "lev", "leviticus": "lev",
	"num": "num", "numbers": "num",
	"deut": "deu", "deu": "deu", "deuteronomy": "deu",
	"josh": "jos", "jos": "jos", "joshua": "jos",
	"judg": "jdg", "jdg": "jdg", "judges": "jdg",
	"ruth": "rut", "rut": "rut",
	"1sam": "1sa", "1 sam": "1sa", "1 samuel": "1sa", "1samuel": "1sa", "1sa": "1sa",
	"2sam": "2sa", "2 sam": "2sa", "2 samuel": "2sa", "2samuel": "2sa", "2sa": "2sa",
	"1kgs": "1ki", "1 kgs": "1ki", "1 kings": "1ki", "1kings": "1ki", "1ki": "1ki",
	"2kgs": "2ki", "2 kgs": "2ki", "2 kings": "2ki", "2kings": "2ki", "2ki": "2ki",
	"1chr": "1ch", "1 chr": "1ch", "1 chronicles": "1ch", "1chronicles": "1ch", "1ch": "1ch",
	"2chr": "2ch", "2 chr": "2ch", "2 chronicles": "2ch", "2chronicles": "2ch", "2ch": "2ch",
	"ezra": "ezr", "ezr": "ezr",
	"neh": "neh", "nehemiah": "neh",
	"esth": "est", "est": "est", "esther": "est",
	"job": "job",
	"ps": "psa", "psa": "psa", "psalm": "psa", "psalms": "psa",
	"prov": "pro", "pro": "pro", "proverbs": "pro",
	"eccl": "ecc", "ecc": "ecc", "ecclesiastes": "ecc",
	"song": "sng", "song of solomon": "sng", "song of songs": "sng", "sos": "sng", "canticles": "sng",
	"isa": "isa", "isaiah": "isa",
	"jer": "jer", "jeremiah": "jer",
	"lam": "lam", "lamentations": "lam",
	"ezek": "eze", "eze": "eze", "ezekiel": "eze",
	"dan": "dan", "daniel": "dan",
	"hos": "hos", "hosea": "hos",
	"joel": "joe", "joe": "joe",
	"amos": "amo", "amo": "amo",
	"obad": "oba", "oba": "oba", "obadiah": "oba",
	"jonah": "jon", "jon": "jon",
	"mic": "mic", "micah": "mic",
	"nah": "nah", "nahum": "nah",
	"hab": "hab", "habakkuk": "hab",
	"zeph": "zep", "zep": "zep", "zephaniah": "zep",
	"hag": "hag", "haggai": "hag",
	"zech": "zec", "zec": "zec", "zechariah": "zec",
	"mal": "mal", "malachi": "mal",
	"matt": "mat", "mat": "mat", "matthew": "mat", "mt": "mat",
	"mark": "mar", "mar": "mar", "mrk": "mar", "mk": "mar",
	"luke": "luk", "luk": "luk", "lk": "luk",
	"john": "joh", "joh": "joh", "jn": "joh",
	"acts": "act", "act": "act",
	"rom": "rom", "romans": "rom",
	"1cor": "1co", "1 cor": "1co", "1 corinthians": "1co", "1corinthians": "1co", "1co": "1co",
	"2cor": "2co", "2 cor": "2co", "2 corinthians": "2co", "2corinthians": "2co", "2co": "2co",
	"gal": "gal", "galatians": "gal",
	"eph": "eph", "ephesians": "eph",
	"phil": "php", "php": "php", "philippians": "php",
	"col": "col", "colossians": "col",
	"1thess": "1th", "1 thess": "1th", "1 thessalonians": "1th", "1thessalonians": "1th", "1th": "1th",
	"2thess": "2th", "2 thess": "2th", "2 thessalonians": "2th", "2thessalonians": "2th", "2th": "2th",
	"1tim": "1ti", "1 tim": "1ti", "1 timothy": "1ti", "1timothy": "1ti", "1ti": "1ti",
	"2tim": "2ti", "2 tim": "2ti", "2 timothy": "2ti", "2timothy": "2ti", "2ti": "2ti",
	"titus": "tit", "tit": "tit",
	"phlm": "phm", "philemon": "phm", "phm": "phm",
	"heb": "heb", "hebrews": "heb",
	"jas": "jas", "james": "jas",
	"1pet": "1pe", "1 pet": "1pe", "1 peter": "1pe", "1peter": "1pe", "1pe": "1pe",
	"2pet": "2pe", "2 pet": "2pe", "2 peter": "2pe", "2peter": "2pe", "2pe": "2pe",
	"1john": "1jo", "1 john": "1jo", "1jn": "1jo", "1 jn": "1jo", "1jo": "1jo",
	"2john": "2jo", "2 john": "2jo", "2jn": "2jo", "2 jn": "2jo", "2jo": "2jo",
	"3john": "3jo", "3 john": "3jo", "3jn": "3jo", "3 jn": "3jo", "3jo": "3jo",
	"jude": "jud", "jud": "jud",
	"rev": "rev", "revelation": "rev",
}
