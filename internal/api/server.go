package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docdraft/internal/assistant"
	"github.com/dgallion1/docdraft/internal/config"
	"github.com/dgallion1/docdraft/internal/export"
	"github.com/dgallion1/docdraft/internal/session"
)

// Server is the HTTP API server for docdraft.
type Server struct {
	router   chi.Router
	sessions *session.Store
	exports  *export.Orchestrator
	gemini   *assistant.GeminiClient
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *session.Store, exports *export.Orchestrator, gemini *assistant.GeminiClient, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: sessions,
		exports:  exports,
		gemini:   gemini,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocdraftAPIKey, s.log))

		r.Post("/api/sessions", s.handleCreateSession)
		r.Get("/api/sessions/{sessionID}", s.handleGetSession)
		r.Put("/api/sessions/{sessionID}/snapshot", s.handlePutSnapshot)

		r.Post("/api/sessions/{sessionID}/commands/block-type", s.handleBlockTypeCommand)
		r.Post("/api/sessions/{sessionID}/commands/inline-style", s.handleInlineStyleCommand)
		r.Post("/api/sessions/{sessionID}/commands/alignment", s.handleAlignmentCommand)
		r.Post("/api/sessions/{sessionID}/commands/key", s.handleKeyCommand)
		r.Post("/api/sessions/{sessionID}/commands/depth", s.handleDepthCommand)

		r.Get("/api/sessions/{sessionID}/outline", s.handleOutline)
		r.Get("/api/sessions/{sessionID}/markup", s.handleMarkup)
		r.Get("/api/boilerplate", s.handleListBoilerplate)
		r.Post("/api/sessions/{sessionID}/boilerplate", s.handleBoilerplate)
		r.Post("/api/sessions/{sessionID}/import", s.handleImport)

		r.Post("/api/sessions/{sessionID}/export", s.handleExport)
		r.Get("/api/export/{jobID}/status", s.handleExportStatus)
		r.Get("/api/export/{jobID}/artifact", s.handleExportArtifact)

		r.Post("/api/sessions/{sessionID}/assistant", s.handleAskAssistant)
		r.Get("/api/sessions/{sessionID}/assistant", s.handleAssistantState)
		r.Get("/api/stats/assistant", s.handleAssistantStats)
		r.Get("/api/stats/export", s.handleExportStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
