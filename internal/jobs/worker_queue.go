package jobs

import (
	"github.com/lbraga/millionaire/internal/services"
	"github.com/lbraga/millionaire/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool      *worker.Pool
	questionService services.QuestionService
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, questionService services.QuestionService) JobQueue {
	return &WorkerQueue{
		importPool:      importPool,
		questionService: questionService,
	}
}

func (q *WorkerQueue) EnqueueQuestionImport(questions []services.QuestionInput) error {
	return q.importPool.Submit(&worker.ImportQuestionsJob{
		Service:   q.questionService,
		Questions: questions,
	})
}
