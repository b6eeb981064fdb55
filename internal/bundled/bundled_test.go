package bundled

import (
	"context"
	"strings"
	"testing"

	"github.com/FocuswithJustin/StudyBible/core/verses"
)

func TestEmbeddedCatalog(t *testing.T) {
	cat, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if cat.Len() < 2 {
		t.Fatalf("bundled corpus should ship at least two translations, got %d", cat.Len())
	}
	if !cat.Has("kjv") || !cat.Has("web") {
		t.Error("expected kjv and web in the bundled corpus")
	}
}

func TestEmbeddedSourcesLoad(t *testing.T) {
	cat, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	l, err := Loader(cat)
	if err != nil {
		t.Fatalf("Loader() error: %v", err)
	}
	store := verses.New(cat, l)
	ctx := context.Background()

	for _, id := range []string{"kjv", "web"} {
		books, err := store.GetBooks(ctx, id)
		if err != nil {
			t.Fatalf("GetBooks(%s) error: %v", id, err)
		}
		if len(books) == 0 {
			t.Fatalf("%s has no books", id)
		}

		// Every declared chapter must load cleanly.
		for _, b := range books {
			for ch := 1; ch <= b.ChapterCount; ch++ {
				vs, err := store.GetChapter(ctx, id, b.ID, ch)
				if err != nil {
					t.Errorf("GetChapter(%s, %s, %d) error: %v", id, b.ID, ch, err)
					continue
				}
				if len(vs) == 0 {
					t.Errorf("%s %s %d has no verses", id, b.ID, ch)
				}
			}
		}
	}
}

func TestGenesisOneOne(t *testing.T) {
	cat, err := Catalog()
	if err != nil {
		t.Fatal(err)
	}
	l, err := Loader(cat)
	if err != nil {
		t.Fatal(err)
	}
	store := verses.New(cat, l)

	vs, err := store.GetChapter(context.Background(), "kjv", "gen", 1)
	if err != nil {
		t.Fatalf("GetChapter() error: %v", err)
	}
	if vs[0].Number != 1 || !strings.Contains(strings.ToLower(vs[0].Text), "in the beginning") {
		t.Errorf("unexpected first verse: %+v", vs[0])
	}
}
