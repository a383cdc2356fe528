package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", s.handleListPlayers)
		r.Post("/players", s.handleCreatePlayer)
		r.Get("/players/{id}", s.handleGetPlayer)
		r.Post("/players/{id}/select", s.handleSelectPlayer)
		r.Post("/players/{id}/delete", s.handleDeletePlayer)

		r.Post("/questions", s.handleCreateQuestion)
		r.Get("/questions", s.handleListQuestions)
		r.Get("/questions/levels", s.handleQuestionLevels)
		r.Get("/questions/{id}", s.handleGetQuestion)
		r.Post("/questions/import", s.handleImportQuestions)

		// Game routes act on behalf of the selected player.
		r.Group(func(r chi.Router) {
			r.Use(s.playerMiddleware)

			r.Post("/games", s.handleStartGame)
			r.Get("/games", s.handleListGames)
			r.Get("/games/current", s.handleCurrentGame)
			r.Get("/games/{id}", s.handleGetGame)
			r.Post("/games/{id}/answer", s.handleAnswer)
			r.Post("/games/{id}/take-money", s.handleTakeMoney)
			r.Post("/games/{id}/help", s.handleUseAid)

			r.Get("/stats", s.handlePlayerStats)
		})
	})

	return r
}
