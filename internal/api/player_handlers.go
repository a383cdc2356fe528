package api

import (
	"net/http"
	"strings"
)

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.PlayerService.ListPlayers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	username := strings.ToLower(strings.TrimSpace(body.Username))
	player, err := s.PlayerService.CreatePlayer(r.Context(), username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setPlayerCookie(w, player.ID)
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	player, err := s.PlayerService.GetPlayer(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleSelectPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	player, err := s.PlayerService.GetPlayer(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setPlayerCookie(w, player.ID)
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.PlayerService.DeletePlayer(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	clearPlayerCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
