package api

import (
	"net/http"

	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
)

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	state, err := s.GameService.StartGame(r.Context(), player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleCurrentGame(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	state, err := s.GameService.CurrentGame(r.Context(), player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	gameID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.GameService.GetGame(r.Context(), gameID, player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	games, err := s.GameService.ListGames(r.Context(), player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	player := playerFromContext(r.Context())
	gameID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body struct {
		Letter string `json:"letter"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("answer submitted: game_id=%d, letter=%s", gameID, body.Letter)

	result, err := s.GameService.AnswerQuestion(r.Context(), gameID, player.ID, body.Letter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTakeMoney(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	gameID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.GameService.TakeMoney(r.Context(), gameID, player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleUseAid(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	gameID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body struct {
		Kind string `json:"kind"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.GameService.UseAid(r.Context(), gameID, player.ID, models.AidKind(body.Kind))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
