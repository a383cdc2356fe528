package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/lbraga/millionaire/internal/services"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueQuestionImport(questions []services.QuestionInput) error {
	args := m.Called(questions)
	return args.Error(0)
}
