package jobs

import "github.com/lbraga/millionaire/internal/services"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueQuestionImport(questions []services.QuestionInput) error
}
