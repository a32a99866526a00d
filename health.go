package traintracker

import (
	"net/http"

	"github.com/theoremus-urban-solutions/train-tracker/utils"
)

type healthResponse struct {
	Status           string `json:"status"`
	Time             string `json:"time"`
	LastRefreshEpoch int64  `json:"last_refresh_epoch"`
	LastRefresh      string `json:"last_refresh,omitempty"`
	Trains           int    `json:"trains"`
	Clients          int    `json:"ws_clients"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	view := s.tracker.View()
	resp := healthResponse{
		Status:  "ok",
		Time:    utils.Iso8601Now(),
		Trains:  len(view.Trains),
		Clients: s.hub.ClientCount(),
	}
	if !view.LastRefreshedAt.IsZero() {
		resp.LastRefreshEpoch = view.LastRefreshedAt.Unix()
		resp.LastRefresh = utils.Iso8601FromUnixSeconds(resp.LastRefreshEpoch)
	}
	respondJSON(w, http.StatusOK, resp)
}
