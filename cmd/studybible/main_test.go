package main

import (
	"testing"

	"github.com/FocuswithJustin/StudyBible/core/refparse"
)

func mustParse(t *testing.T, input string) *refparse.Range {
	t.Helper()
	ref, err := refparse.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return ref
}

func TestShowVerse(t *testing.T) {
	tests := []struct {
		reference string
		verse     int
		want      bool
	}{
		{"Genesis 1", 1, true},
		{"Genesis 1", 31, true},
		{"Genesis 1:1", 1, true},
		{"Genesis 1:1", 2, false},
		{"Genesis 1:2-4", 1, false},
		{"Genesis 1:2-4", 3, true},
		{"Genesis 1:2-4", 5, false},
		{"Genesis 1:28-2:3", 27, false},
		{"Genesis 1:28-2:3", 30, true},
		{"Genesis", 7, true},
	}

	for _, tt := range tests {
		ref := mustParse(t, tt.reference)
		if got := showVerse(ref, tt.verse); got != tt.want {
			t.Errorf("showVerse(%q, %d) = %v, want %v", tt.reference, tt.verse, got, tt.want)
		}
	}
}

func TestOpenDataDefaultsToBundledCorpus(t *testing.T) {
	CLI.Data = ""
	cat, store, err := openData()
	if err != nil {
		t.Fatalf("openData() error: %v", err)
	}
	if cat.Len() == 0 {
		t.Error("bundled catalog is empty")
	}
	if store == nil {
		t.Error("no store returned")
	}
}

func TestOpenDataMissingManifest(t *testing.T) {
	CLI.Data = t.TempDir()
	defer func() { CLI.Data = "" }()

	if _, _, err := openData(); err == nil {
		t.Error("expected error for directory without manifest.json")
	}
}
