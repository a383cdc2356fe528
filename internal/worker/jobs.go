package worker

import (
	"context"

	"github.com/lbraga/millionaire/internal/services"
)

// ImportQuestionsJob batch-inserts a validated question payload into the
// catalog off the request path.
type ImportQuestionsJob struct {
	Service   services.QuestionService
	Questions []services.QuestionInput
}

func (j *ImportQuestionsJob) Name() string {
	return "import-questions"
}

func (j *ImportQuestionsJob) Run(ctx context.Context) error {
	_, err := j.Service.ImportQuestions(ctx, j.Questions)
	return err
}
