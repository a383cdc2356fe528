package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/lbraga/millionaire/internal/models"
)

// MockAidEngine is a mock implementation of game.AidEngine
type MockAidEngine struct {
	mock.Mock
}

func (m *MockAidEngine) FiftyFifty(gq *models.GameQuestion) []string {
	args := m.Called(gq)
	return args.Get(0).([]string)
}

func (m *MockAidEngine) AudienceVotes(gq *models.GameQuestion) map[string]int {
	args := m.Called(gq)
	return args.Get(0).(map[string]int)
}

func (m *MockAidEngine) FriendCall(gq *models.GameQuestion) string {
	args := m.Called(gq)
	return args.String(0)
}
