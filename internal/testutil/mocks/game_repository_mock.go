package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lbraga/millionaire/internal/models"
)

// MockGameRepository is a mock implementation of repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game, questions []models.GameQuestion) error {
	args := m.Called(ctx, game, questions)
	return args.Error(0)
}

func (m *MockGameRepository) Get(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) Active(ctx context.Context, playerID int64) (*models.Game, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) ListByPlayer(ctx context.Context, playerID int64) ([]models.Game, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockGameRepository) Update(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Finish(ctx context.Context, game *models.Game, credit int) error {
	args := m.Called(ctx, game, credit)
	return args.Error(0)
}

func (m *MockGameRepository) QuestionAt(ctx context.Context, gameID int64, level int) (*models.GameQuestion, error) {
	args := m.Called(ctx, gameID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameQuestion), args.Error(1)
}

func (m *MockGameRepository) Questions(ctx context.Context, gameID int64) ([]models.GameQuestion, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameQuestion), args.Error(1)
}

func (m *MockGameRepository) SaveAidUse(ctx context.Context, game *models.Game, question *models.GameQuestion) error {
	args := m.Called(ctx, game, question)
	return args.Error(0)
}
