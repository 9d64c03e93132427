// Package httpapi exposes challenges over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/abhisek/cyberhygiene/internal/challenge"
)

// Options configures a Server.
type Options struct {
	// SessionTTL evicts challenges untouched for this long. Zero keeps
	// them until deleted.
	SessionTTL time.Duration

	// AllowedOrigins is passed to the CORS handler. Empty allows any origin.
	AllowedOrigins []string
}

// Server serves the challenge API.
type Server struct {
	engine   *challenge.Engine
	registry *Registry
	opts     Options
	now      func() time.Time
}

// NewServer creates a Server backed by engine.
func NewServer(engine *challenge.Engine, opts Options) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		engine:   engine,
		registry: NewRegistry(opts.SessionTTL),
		opts:     opts,
		now:      time.Now,
	}
}

// Registry returns the session registry so the caller can run its sweeper.
func (s *Server) Registry() *Registry { return s.registry }

// Handler builds the routed, CORS-wrapped, access-logged handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/categories", s.listCategories).Methods("GET")
	api.HandleFunc("/challenges", s.createChallenge).Methods("POST")
	api.HandleFunc("/challenges/{id}", s.getChallenge).Methods("GET")
	api.HandleFunc("/challenges/{id}", s.deleteChallenge).Methods("DELETE")
	api.HandleFunc("/challenges/{id}/answer", s.answer).Methods("POST")
	api.HandleFunc("/challenges/{id}/toggle", s.toggle).Methods("POST")
	api.HandleFunc("/challenges/{id}/retry", s.retry).Methods("POST")
	api.HandleFunc("/challenges/{id}/skip", s.skip).Methods("POST")
	api.HandleFunc("/challenges/{id}/continue", s.dismiss).Methods("POST")
	api.HandleFunc("/challenges/{id}/restart", s.restart).Methods("POST")
	api.HandleFunc("/challenges/{id}/export", s.exportPDF).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return accessLog(c.Handler(r))
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
