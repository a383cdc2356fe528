package api

import (
	"net/http"

	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/services"
)

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var input services.QuestionInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	question, err := s.QuestionService.CreateQuestion(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	question, err := s.QuestionService.GetQuestion(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	filter := models.QuestionFilter{
		Level:  queryInt(r, "level", -1),
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	page, err := s.QuestionService.ListQuestions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleQuestionLevels(w http.ResponseWriter, r *http.Request) {
	counts, err := s.QuestionService.CountByLevel(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": counts})
}

// handleImportQuestions validates the payload synchronously and hands the
// actual inserts to the import worker pool.
func (s *Server) handleImportQuestions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var body struct {
		Questions []services.QuestionInput `json:"questions"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.QuestionService.ValidateImport(body.Questions); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.JobQueue.EnqueueQuestionImport(body.Questions); err != nil {
		log.Error("failed to enqueue question import: %v", err)
		handleError(w, r, err)
		return
	}

	log.Info("question import queued: count=%d", len(body.Questions))
	writeJSON(w, http.StatusAccepted, map[string]any{
		"queued": len(body.Questions),
	})
}
