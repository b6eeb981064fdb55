package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/errors"
	"github.com/FocuswithJustin/StudyBible/core/parallel"
	"github.com/FocuswithJustin/StudyBible/internal/logging"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain error kinds onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrUnknownTranslation),
		errors.Is(err, errors.ErrUnknownBook),
		errors.Is(err, errors.ErrNoCorrespondingBook):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errors.ErrChapterOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrCatalogUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":      "studybible",
		"translations": s.catalog.Len(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"cached_books":    stats.Books,
		"cached_chapters": stats.Chapters,
	})
}

// handleTranslations serves GET /api/translations.
func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.List())
}

// handleTranslationSub routes the per-translation paths:
//
//	GET /api/translations/{id}/books
//	GET /api/translations/{id}/{book}/{chapter}
func (s *Server) handleTranslationSub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/translations/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 2 && parts[1] == "books":
		s.serveBooks(w, r, parts[0])
	case len(parts) == 3:
		s.serveChapter(w, r, parts[0], parts[1], parts[2])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) serveBooks(w http.ResponseWriter, r *http.Request, translationID string) {
	books, err := s.store.GetBooks(r.Context(), translationID)
	if err != nil {
		logging.TranslationError(translationID, "load_books", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) serveChapter(w http.ResponseWriter, r *http.Request, translationID, bookID, chapterStr string) {
	chapter, err := strconv.Atoi(chapterStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chapter number: "+chapterStr)
		return
	}

	start := time.Now()
	verses, err := s.store.GetChapter(r.Context(), translationID, bookID, chapter)
	if err != nil {
		logging.TranslationError(translationID, "load_chapter", err)
		writeDomainError(w, err)
		return
	}
	logging.TranslationLoad(translationID, "chapter", time.Since(start),
		"book_id", bookID, "chapter", chapter, "verses", len(verses))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"translation_id": translationID,
		"book_id":        bookID,
		"chapter":        chapter,
		"verses":         verses,
	})
}

// handleSearch serves GET /api/search?translation={id}&q={query}.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	translationID := r.URL.Query().Get("translation")
	if translationID == "" {
		writeError(w, http.StatusBadRequest, "missing translation parameter")
		return
	}
	query := r.URL.Query().Get("q")

	start := time.Now()
	results, err := s.search.Search(r.Context(), translationID, query)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	logging.SearchQuery(translationID, query, len(results), time.Since(start))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"translation_id": translationID,
		"query":          query,
		"count":          len(results),
		"results":        results,
	})
}

// handleParallel serves GET /api/parallel (current state).
func (s *Server) handleParallel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.parallel.Current())
}

type primaryRequest struct {
	TranslationID string `json:"translation_id"`
	BookID        string `json:"book_id"`
	Chapter       int    `json:"chapter"`
}

// handleParallelPrimary serves POST /api/parallel/primary.
func (s *Server) handleParallelPrimary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req primaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.parallel.SetPrimary(r.Context(), req.TranslationID, req.BookID, req.Chapter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.hub.BroadcastState(view.State)
	writeParallelView(w, view)
}

type secondaryRequest struct {
	TranslationID string `json:"translation_id"`
}

// handleParallelSecondary serves POST /api/parallel/secondary. An empty
// translation id clears the secondary pane.
func (s *Server) handleParallelSecondary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req secondaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := s.parallel.SetSecondary(r.Context(), req.TranslationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.hub.BroadcastState(view.State)
	writeParallelView(w, view)
}

// parallelViewResponse is the JSON shape of a coordinator view.
// Secondary-side failures ride along as a string so the primary pane still
// renders.
type parallelViewResponse struct {
	State          bible.ParallelState `json:"state"`
	Primary        []bible.Verse       `json:"primary"`
	Secondary      []bible.Verse       `json:"secondary,omitempty"`
	SecondaryError string              `json:"secondary_error,omitempty"`
}

func writeParallelView(w http.ResponseWriter, view parallel.View) {
	resp := parallelViewResponse{
		State:     view.State,
		Primary:   view.Primary,
		Secondary: view.Secondary,
	}
	if view.SecondaryErr != nil {
		resp.SecondaryError = view.SecondaryErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}
