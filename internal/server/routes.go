package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/recall/internal/scheduler"
)

func (s *Server) handleListConcepts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	concepts := s.graph.Concepts()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, concepts)
}

func (s *Server) handleAddConcept(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string   `json:"name"`
		ID            string   `json:"id"`
		Category      string   `json:"category"`
		Prerequisites []string `json:"prerequisites"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.graph.Concept(req.ID); exists {
		writeJSON(w, http.StatusConflict, errorBody("Concept with this ID already exists"))
		return
	}

	// New concepts enter at full weight, matching the protocol layer.
	s.graph.InsertConcept(req.Name, req.ID, req.Category, 1.0, req.Prerequisites)
	writeJSON(w, http.StatusCreated, successBody("Concept added"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.graph.Stats()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRevisionQueue(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	queue := s.graph.RevisionQueue(s.graph.TotalConcepts())
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, queue)
}

func (s *Server) handleRevise(w http.ResponseWriter, r *http.Request) {
	conceptID := chi.URLParam(r, "conceptID")

	s.mu.Lock()
	err := s.graph.ReviseConcept(conceptID, scheduler.DefaultBoost)
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, scheduler.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("Concept not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, successBody("Concept revised"))
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days *int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	days := 1
	if req.Days != nil {
		days = *req.Days
	}

	s.mu.Lock()
	s.graph.SimulateTimePassage(days)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "days": days})
}

func (s *Server) handleSetDecayRate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rate *float64 `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	rate := scheduler.DefaultDecayRate
	if req.Rate != nil {
		rate = *req.Rate
	}

	s.mu.Lock()
	s.graph.SetDecayRate(rate)
	s.graph.UpdateMemoryStrengths()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "rate": rate})
}
