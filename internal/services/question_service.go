package services

import (
	"context"

	"github.com/lbraga/millionaire/internal/errors"
	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
)

// QuestionInput is one incoming catalog entry. The first answer is the
// correct one; presentation shuffling happens per game, never here.
type QuestionInput struct {
	Level   int      `json:"level"`
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// QuestionPage is a paginated catalog listing.
type QuestionPage struct {
	Questions []models.Question `json:"questions"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// QuestionService handles question catalog business logic
type QuestionService interface {
	CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	ListQuestions(ctx context.Context, filter models.QuestionFilter) (*QuestionPage, error)
	CountByLevel(ctx context.Context) (map[int]int, error)
	// ImportQuestions validates and batch-inserts a payload. Called from
	// the import worker, not from request handlers.
	ImportQuestions(ctx context.Context, inputs []QuestionInput) (int, error)
	ValidateImport(inputs []QuestionInput) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	maxLevel     int
}

// NewQuestionService creates a new QuestionService. maxLevel is the
// highest ladder level questions may target.
func NewQuestionService(questionRepo repository.QuestionRepository, maxLevel int) QuestionService {
	return &questionService{questionRepo: questionRepo, maxLevel: maxLevel}
}

func validateInput(input QuestionInput, maxLevel int) error {
	if input.Level < 0 || input.Level > maxLevel {
		return errors.NewValidationError("level", "outside the prize ladder")
	}
	if input.Text == "" {
		return errors.NewValidationError("text", "cannot be empty")
	}
	if len(input.Answers) != 4 {
		return errors.NewValidationError("answers", "exactly four answers required, correct one first")
	}
	for _, answer := range input.Answers {
		if answer == "" {
			return errors.NewValidationError("answers", "answers cannot be empty")
		}
	}
	return nil
}

func toQuestion(input QuestionInput) models.Question {
	return models.Question{
		Level:   input.Level,
		Text:    input.Text,
		Answer1: input.Answers[0],
		Answer2: input.Answers[1],
		Answer3: input.Answers[2],
		Answer4: input.Answers[3],
	}
}

func (s *questionService) CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating question: level=%d", input.Level)

	if err := validateInput(input, s.maxLevel); err != nil {
		return nil, err
	}

	question := toQuestion(input)
	id, err := s.questionRepo.Insert(ctx, question)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	question.ID = id
	return &question, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting question: id=%d", id)

	question, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if question == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	return question, nil
}

func (s *questionService) ListQuestions(ctx context.Context, filter models.QuestionFilter) (*QuestionPage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing questions")

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	total, err := s.questionRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count questions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &QuestionPage{
		Questions: questions,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

func (s *questionService) CountByLevel(ctx context.Context) (map[int]int, error) {
	log := logger.FromContext(ctx)

	counts, err := s.questionRepo.CountByLevel(ctx)
	if err != nil {
		log.Error("failed to count questions per level: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return counts, nil
}

func (s *questionService) ValidateImport(inputs []QuestionInput) error {
	if len(inputs) == 0 {
		return errors.NewValidationError("questions", "payload is empty")
	}
	for _, input := range inputs {
		if err := validateInput(input, s.maxLevel); err != nil {
			return err
		}
	}
	return nil
}

func (s *questionService) ImportQuestions(ctx context.Context, inputs []QuestionInput) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing questions: count=%d", len(inputs))

	if err := s.ValidateImport(inputs); err != nil {
		return 0, err
	}

	questions := make([]models.Question, 0, len(inputs))
	for _, input := range inputs {
		questions = append(questions, toQuestion(input))
	}

	ids, err := s.questionRepo.InsertBatch(ctx, questions)
	if err != nil {
		log.Error("failed to import questions: %v", err)
		return 0, errors.NewInternalError(err)
	}

	log.Info("questions imported: count=%d", len(ids))
	return len(ids), nil
}
