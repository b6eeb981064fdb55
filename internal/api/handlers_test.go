package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/verses"
	"github.com/FocuswithJustin/StudyBible/internal/bundled"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cat, err := bundled.Catalog()
	if err != nil {
		t.Fatalf("bundled.Catalog() error: %v", err)
	}
	l, err := bundled.Loader(cat)
	if err != nil {
		t.Fatalf("bundled.Loader() error: %v", err)
	}

	srv := NewServer(Config{Port: 0}, cat, verses.New(cat, l))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, out interface{}) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func postJSON(t *testing.T, url, body string, wantStatus int, out interface{}) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestTranslationsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var translations []bible.Translation
	getJSON(t, ts.URL+"/api/translations", http.StatusOK, &translations)

	if len(translations) < 2 {
		t.Fatalf("got %d translations, want at least 2", len(translations))
	}
	if translations[0].ID != "kjv" {
		t.Errorf("first translation = %s, want kjv (manifest order)", translations[0].ID)
	}
}

func TestBooksEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var books []bible.Book
	getJSON(t, ts.URL+"/api/translations/kjv/books", http.StatusOK, &books)
	if len(books) == 0 {
		t.Fatal("no books returned")
	}
	if books[0].ID != "gen" {
		t.Errorf("first book = %s, want gen", books[0].ID)
	}

	getJSON(t, ts.URL+"/api/translations/niv/books", http.StatusNotFound, nil)
}

func TestChapterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var resp struct {
		TranslationID string        `json:"translation_id"`
		BookID        string        `json:"book_id"`
		Chapter       int           `json:"chapter"`
		Verses        []bible.Verse `json:"verses"`
	}
	getJSON(t, ts.URL+"/api/translations/kjv/gen/1", http.StatusOK, &resp)

	if resp.Chapter != 1 || resp.BookID != "gen" {
		t.Errorf("wrong coordinates: %+v", resp)
	}
	if len(resp.Verses) == 0 || !strings.Contains(resp.Verses[0].Text, "beginning") {
		t.Errorf("unexpected verses: %+v", resp.Verses)
	}

	getJSON(t, ts.URL+"/api/translations/kjv/gen/99", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/translations/kjv/gen/one", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/translations/kjv/nope/1", http.StatusNotFound, nil)
}

func TestSearchEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var resp struct {
		Count   int                  `json:"count"`
		Results []bible.SearchResult `json:"results"`
	}
	getJSON(t, ts.URL+"/api/search?translation=kjv&q=beginning", http.StatusOK, &resp)

	if resp.Count == 0 {
		t.Fatal("expected matches for 'beginning' in the bundled corpus")
	}
	first := resp.Results[0]
	if first.BookID != "gen" || first.Chapter != 1 || first.Verse != 1 {
		t.Errorf("first match should be Genesis 1:1, got %+v", first)
	}

	getJSON(t, ts.URL+"/api/search?q=light", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/search?translation=niv&q=light", http.StatusNotFound, nil)
}

func TestParallelEndpoints(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts.URL+"/api/parallel/secondary", `{"translation_id": "web"}`, http.StatusOK, nil)

	var view struct {
		State          bible.ParallelState `json:"state"`
		Primary        []bible.Verse       `json:"primary"`
		Secondary      []bible.Verse       `json:"secondary"`
		SecondaryError string              `json:"secondary_error"`
	}
	postJSON(t, ts.URL+"/api/parallel/primary",
		`{"translation_id": "kjv", "book_id": "gen", "chapter": 1}`, http.StatusOK, &view)

	if len(view.Primary) == 0 || len(view.Secondary) == 0 {
		t.Fatalf("both panes should have verses: %+v", view)
	}
	if view.SecondaryError != "" {
		t.Errorf("unexpected secondary error: %s", view.SecondaryError)
	}

	var state bible.ParallelState
	getJSON(t, ts.URL+"/api/parallel", http.StatusOK, &state)
	if state.PrimaryID != "kjv" || state.SecondaryID != "web" || state.Chapter != 1 {
		t.Errorf("wrong state: %+v", state)
	}

	// Unknown ids are rejected outright.
	postJSON(t, ts.URL+"/api/parallel/primary",
		`{"translation_id": "niv", "book_id": "gen", "chapter": 1}`, http.StatusNotFound, nil)
	postJSON(t, ts.URL+"/api/parallel/secondary", `{"translation_id": "niv"}`, http.StatusNotFound, nil)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var resp map[string]interface{}
	getJSON(t, ts.URL+"/health", http.StatusOK, &resp)
	if resp["status"] != "ok" {
		t.Errorf("health status = %v", resp["status"])
	}
}
