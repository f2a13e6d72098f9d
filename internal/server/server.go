package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lynx-zenchar/builtbuff/internal/models"
	"github.com/lynx-zenchar/builtbuff/internal/storage"
)

// ChatClient produces a coaching reply for a user message given their
// training history. Satisfied by *coach.Client.
type ChatClient interface {
	Chat(ctx context.Context, message string, history []models.SetRecord) (string, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	coach  ChatClient
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, coachClient ChatClient, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		coach:  coachClient,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/records", s.handleListRecords)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/progress/weight", s.handleWeightProgression)
	s.router.Get("/api/v1/progress/volume", s.handleVolumeByMuscle)
	s.router.Get("/api/v1/progress/frequency", s.handleFrequency)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/templates", s.handleListTemplates)
	s.router.Get("/api/v1/stats", s.handleStats)

	// Mutations and upstream-cost endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/users/login", s.handleLogin)
		r.Post("/api/v1/records", s.handleCreateRecords)
		r.Put("/api/v1/records/{id}", s.handleUpdateRecord)
		r.Delete("/api/v1/records/{id}", s.handleDeleteRecord)
		r.Post("/api/v1/exercises", s.handleCreateExercise)
		r.Post("/api/v1/templates", s.handleCreateTemplate)
		r.Put("/api/v1/templates/{id}", s.handleUpdateTemplate)
		r.Delete("/api/v1/templates/{id}", s.handleDeleteTemplate)
		r.Post("/api/v1/coach/chat", s.handleCoachChat)
	})
}
