package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lazypower/recall/internal/scheduler"
)

// Server is the recall HTTP API server. The graph itself is
// single-threaded, so every handler takes mu before touching it; the
// graph is never aliased outside this struct once serving starts.
type Server struct {
	mu       sync.Mutex
	graph    *scheduler.Graph
	router   chi.Router
	version  string
	started  time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a new Server around the given graph.
func New(g *scheduler.Graph, version string) *Server {
	s := &Server{
		graph:   g,
		version: version,
		started: time.Now(),
		stopCh:  make(chan struct{}),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/concepts", s.handleListConcepts)
		r.Post("/concepts", s.handleAddConcept)
		r.Get("/stats", s.handleStats)
		r.Get("/revision-queue", s.handleRevisionQueue)
		r.Post("/revise/{conceptID}", s.handleRevise)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/decay-rate", s.handleSetDecayRate)
	})

	s.router = r
}

// StartDayTimer advances the study day once per interval until Stop is
// called. A zero or negative interval disables the timer.
func (s *Server) StartDayTimer(interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				s.graph.SimulateTimePassage(1)
				day := s.graph.CurrentDay()
				s.mu.Unlock()
				log.Printf("day timer: advanced to day %d", day)
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop shuts down the server's background goroutines.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	total := s.graph.TotalConcepts()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"uptime":   time.Since(s.started).Seconds(),
		"concepts": total,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"status": "error", "message": msg}
}

func successBody(msg string) map[string]string {
	return map[string]string{"status": "success", "message": msg}
}
