package api

import "net/http"

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	stats, err := s.StatsService.PlayerStats(r.Context(), player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
