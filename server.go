package traintracker

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/theoremus-urban-solutions/train-tracker/tracker"
)

// Server exposes the tracker's state over HTTP and WebSocket.
type Server struct {
	tracker *tracker.Tracker
	hub     *Hub
	httpSrv *http.Server
}

// NewServer creates the serving layer for a tracker and its hub.
func NewServer(t *tracker.Tracker, hub *Hub, port int) *Server {
	s := &Server{tracker: t, hub: hub}
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/state", s.handleState)
	r.Get("/api/trains", s.handleTrains)
	r.Get("/api/trains/selected", s.handleSelected)
	r.Post("/api/search", s.handleSearch)
	r.Post("/api/select/{id}", s.handleSelect)
	r.Post("/api/deselect", s.handleDeselect)
	r.Get("/ws", s.hub.HandleWebSocket(s.tracker))

	return r
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", s.httpSrv.Addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
