package traintracker

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theoremus-urban-solutions/train-tracker/formatter"
	"github.com/theoremus-urban-solutions/train-tracker/tracker"
	"github.com/theoremus-urban-solutions/train-tracker/upstream"
)

type trainResponse struct {
	Train   upstream.Train      `json:"train"`
	Display formatter.TrainView `json:"display"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.tracker.View())
}

func (s *Server) handleTrains(w http.ResponseWriter, r *http.Request) {
	view := s.tracker.View()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"trains":          view.Trains,
		"lastRefreshedAt": view.LastRefreshedAt,
	})
}

func (s *Server) handleSelected(w http.ResponseWriter, r *http.Request) {
	view := s.tracker.View()
	if view.Selected == nil {
		respondError(w, http.StatusNotFound, "no train selected")
		return
	}
	respondJSON(w, http.StatusOK, trainResponse{
		Train:   *view.Selected,
		Display: formatter.ProjectTrain(*view.Selected),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	found, err := s.tracker.Search(r.Context(), query)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, trainResponse{
			Train:   found,
			Display: formatter.ProjectTrain(found),
		})
	case errors.Is(err, upstream.ErrEmptyQuery):
		respondError(w, http.StatusBadRequest, "query must not be empty")
	case errors.Is(err, tracker.ErrNoMatch):
		respondJSON(w, http.StatusOK, map[string]interface{}{"noMatch": true})
	case errors.Is(err, tracker.ErrStopped):
		respondError(w, http.StatusServiceUnavailable, "tracker stopped")
	default:
		respondError(w, http.StatusBadGateway, "search failed, please retry")
	}
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := upstream.TrainID(chi.URLParam(r, "id"))
	found, err := s.tracker.Select(r.Context(), id)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, trainResponse{
			Train:   found,
			Display: formatter.ProjectTrain(found),
		})
	case errors.Is(err, tracker.ErrUnknownTrain):
		respondError(w, http.StatusNotFound, "no such train: "+string(id))
	case errors.Is(err, tracker.ErrStopped):
		respondError(w, http.StatusServiceUnavailable, "tracker stopped")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Deselect(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "tracker stopped")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
