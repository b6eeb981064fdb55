package loader

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/errors"
)

// Zefania XML source layout:
//
//	<XMLBIBLE>
//	  <BIBLEBOOK bnumber="1" bname="Genesis" bsname="Gen">
//	    <CHAPTER cnumber="1">
//	      <VERS vnumber="1">In the beginning...</VERS>
//	    </CHAPTER>
//	  </BIBLEBOOK>
//	</XMLBIBLE>
//
// Book ids are the lowercased short name (bsname), falling back to the full
// name. Books numbered 1-39 are Old Testament, the rest New Testament.

func (l *SourceLoader) zefaniaParse(translationID string, src catalog.SourceRef) (*xmlquery.Node, error) {
	data, name, err := l.readSourceFile(translationID, src, src.Path)
	if err != nil {
		return nil, err
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewSource(translationID, "zefania", "parsing "+name, err)
	}
	if root := xmlquery.FindOne(doc, "//XMLBIBLE"); root == nil {
		return nil, errors.NewSource(translationID, "zefania", "missing XMLBIBLE root element", nil)
	}
	return doc, nil
}

func zefaniaBookID(node *xmlquery.Node) string {
	if short := node.SelectAttr("bsname"); short != "" {
		return strings.ToLower(short)
	}
	return strings.ToLower(node.SelectAttr("bname"))
}

func (l *SourceLoader) zefaniaBooks(translationID string, src catalog.SourceRef) ([]bible.Book, error) {
	doc, err := l.zefaniaParse(translationID, src)
	if err != nil {
		return nil, err
	}

	nodes := xmlquery.Find(doc, "//XMLBIBLE/BIBLEBOOK")
	if len(nodes) == 0 {
		return nil, errors.NewSource(translationID, "zefania", "source declares no books", nil)
	}

	books := make([]bible.Book, 0, len(nodes))
	for i, node := range nodes {
		num, err := strconv.Atoi(node.SelectAttr("bnumber"))
		if err != nil {
			return nil, errors.NewSource(translationID, "zefania",
				fmt.Sprintf("invalid bnumber %q", node.SelectAttr("bnumber")), err)
		}

		testament := bible.OldTestament
		if num > 39 {
			testament = bible.NewTestament
		}

		id := zefaniaBookID(node)
		if id == "" {
			return nil, errors.NewSource(translationID, "zefania",
				fmt.Sprintf("book %d has no name", num), nil)
		}

		books = append(books, bible.Book{
			ID:           id,
			Name:         node.SelectAttr("bname"),
			Abbreviation: node.SelectAttr("bsname"),
			Testament:    testament,
			Order:        i + 1,
			ChapterCount: len(xmlquery.Find(node, "CHAPTER")),
		})
	}
	return books, nil
}

func (l *SourceLoader) zefaniaChapter(translationID string, src catalog.SourceRef, bookID string, chapter int) ([]bible.Verse, error) {
	doc, err := l.zefaniaParse(translationID, src)
	if err != nil {
		return nil, err
	}

	var bookNode *xmlquery.Node
	for _, node := range xmlquery.Find(doc, "//XMLBIBLE/BIBLEBOOK") {
		if zefaniaBookID(node) == bookID {
			bookNode = node
			break
		}
	}
	if bookNode == nil {
		// LoadChapter already validated the book against the book list, so a
		// miss here means the source is internally inconsistent.
		return nil, errors.NewSource(translationID, "zefania", "book missing from source: "+bookID, nil)
	}

	chapterNode := xmlquery.FindOne(bookNode, fmt.Sprintf("CHAPTER[@cnumber='%d']", chapter))
	if chapterNode == nil {
		return nil, errors.NewSource(translationID, "zefania",
			fmt.Sprintf("chapter %d missing from source for book %s", chapter, bookID), nil)
	}

	var verses []bible.Verse
	for _, vers := range xmlquery.Find(chapterNode, "VERS") {
		num, err := strconv.Atoi(vers.SelectAttr("vnumber"))
		if err != nil {
			return nil, errors.NewSource(translationID, "zefania",
				fmt.Sprintf("invalid vnumber %q", vers.SelectAttr("vnumber")), err)
		}
		verses = append(verses, bible.Verse{
			Number: num,
			Text:   strings.TrimSpace(vers.InnerText()),
		})
	}
	return verses, nil
}
