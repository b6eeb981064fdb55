// Package api provides the StudyBible REST API server.
package api

import (
	"fmt"
	"net/http"

	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/parallel"
	"github.com/FocuswithJustin/StudyBible/core/search"
	"github.com/FocuswithJustin/StudyBible/core/verses"
	"github.com/FocuswithJustin/StudyBible/internal/logging"
)

// Server serves the translation catalog, verse cache, search, and parallel
// view over HTTP and WebSocket.
type Server struct {
	catalog  *catalog.Catalog
	store    *verses.Store
	search   *search.Engine
	parallel *parallel.Coordinator
	hub      *Hub
	cfg      Config
}

// NewServer wires the core components into a server. The hub is created but
// not running; Start (or the caller, in tests) runs it.
func NewServer(cfg Config, cat *catalog.Catalog, store *verses.Store) *Server {
	return &Server{
		catalog:  cat,
		store:    store,
		search:   search.NewEngine(store),
		parallel: parallel.New(cat, store),
		hub:      NewHub(),
		cfg:      cfg,
	}
}

// Handler returns the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/translations", s.handleTranslations)
	mux.HandleFunc("/api/translations/", s.handleTranslationSub)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/parallel", s.handleParallel)
	mux.HandleFunc("/api/parallel/primary", s.handleParallelPrimary)
	mux.HandleFunc("/api/parallel/secondary", s.handleParallelSecondary)
	mux.HandleFunc("/ws", s.handleWebSocket)

	var handler http.Handler = mux
	handler = s.corsMiddleware(handler)
	handler = logging.CombinedMiddleware(handler)
	return handler
}

// Start runs the hub and blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	go s.hub.Run()

	logging.ServerStartup("rest_api", "http", s.cfg.Port,
		"websocket_protocol", "ws",
		"translations", s.catalog.Len())

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	return http.ListenAndServe(addr, s.Handler())
}

// corsMiddleware applies the configured origin policy. An empty allow list
// permits any origin.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if len(s.cfg.AllowedOrigins) == 0 {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				for _, allowed := range s.cfg.AllowedOrigins {
					if allowed == origin {
						w.Header().Set("Access-Control-Allow-Origin", origin)
						break
					}
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
