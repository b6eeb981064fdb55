package refparse

import "testing"

func intp(n int) *int { return &n }

func TestParse(t *testing.T) {
	tests := []struct {
		input        string
		wantBookID   string
		wantChapter  *int
		wantVerse    *int
		wantChapEnd  *int
		wantVerseEnd *int
	}{
		{"Genesis 1:1", "gen", intp(1), intp(1), nil, nil},
		{"Gen 1:1", "gen", intp(1), intp(1), nil, nil},
		{"Gen. 1:1", "gen", intp(1), intp(1), nil, nil},
		{"Gen.1.1", "gen", intp(1), intp(1), nil, nil},
		{"Genesis 1:1-5", "gen", intp(1), intp(1), nil, intp(5)},
		{"Genesis 1:1-2:5", "gen", intp(1), intp(1), intp(2), intp(5)},
		{"Genesis 1-2", "gen", intp(1), nil, intp(2), nil},
		{"Genesis 1", "gen", intp(1), nil, nil, nil},
		{"Genesis", "gen", nil, nil, nil, nil},
		{"John 3:16", "joh", intp(3), intp(16), nil, nil},
		{"1 John 4:8", "1jo", intp(4), intp(8), nil, nil},
		{"1John 4:8", "1jo", intp(4), intp(8), nil, nil},
		{"Song of Solomon 2", "sng", intp(2), nil, nil, nil},
		{"Psalm 23", "psa", intp(23), nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := ref.ID(); got != tt.wantBookID {
				t.Errorf("ID() = %q, want %q", got, tt.wantBookID)
			}
			checkIntp(t, "ChapterStart", ref.ChapterStart, tt.wantChapter)
			checkIntp(t, "VerseStart", ref.VerseStart, tt.wantVerse)
			checkIntp(t, "ChapterEnd", ref.ChapterEnd, tt.wantChapEnd)
			checkIntp(t, "VerseEnd", ref.VerseEnd, tt.wantVerseEnd)
		})
	}
}

func checkIntp(t *testing.T, field string, got, want *int) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", field, fmtIntp(got), fmtIntp(want))
	case *got != *want:
		t.Errorf("%s = %d, want %d", field, *got, *want)
	}
}

func fmtIntp(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "1:1", ":::"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestRangePredicates(t *testing.T) {
	ref, err := Parse("Genesis 1:1-5")
	if err != nil {
		t.Fatal(err)
	}
	if !ref.IsRange() || ref.IsChapterOnly() || ref.IsBookOnly() {
		t.Errorf("wrong predicates for verse range: %+v", ref)
	}

	ref, err = Parse("Genesis 2")
	if err != nil {
		t.Fatal(err)
	}
	if ref.IsRange() || !ref.IsChapterOnly() || ref.IsBookOnly() {
		t.Errorf("wrong predicates for chapter: %+v", ref)
	}
	if ref.Chapter() != 2 {
		t.Errorf("Chapter() = %d, want 2", ref.Chapter())
	}

	ref, err = Parse("Genesis")
	if err != nil {
		t.Fatal(err)
	}
	if !ref.IsBookOnly() || ref.Chapter() != 1 {
		t.Errorf("wrong book-only handling: %+v", ref)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Genesis 1:1", "Genesis 1:1"},
		{"Genesis 1:1-5", "Genesis 1:1-5"},
		{"Genesis 1:1-2:5", "Genesis 1:1-2:5"},
		{"Genesis 1-2", "Genesis 1-2"},
		{"Genesis", "Genesis"},
	}
	for _, tt := range tests {
		ref, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.input, err)
		}
		if got := ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBookID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Genesis", "gen"},
		{"Gen.", "gen"},
		{"EXODUS", "exo"},
		{"Song of Songs", "sng"},
		{"2 Cor", "2co"},
		{"Unknownia", "unknownia"},
		{"Odd Book", "oddbook"},
	}
	for _, tt := range tests {
		if got := BookID(tt.in); got != tt.want {
			t.Errorf("BookID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
