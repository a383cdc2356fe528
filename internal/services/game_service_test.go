package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lbraga/millionaire/internal/errors"
	"github.com/lbraga/millionaire/internal/game"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
	"github.com/lbraga/millionaire/internal/services"
	"github.com/lbraga/millionaire/internal/testutil"
	"github.com/lbraga/millionaire/internal/testutil/mocks"
)

const timeLimit = 35 * time.Minute

var startedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type gameServiceFixture struct {
	gameRepo     *mocks.MockGameRepository
	questionRepo *mocks.MockQuestionRepository
	playerRepo   *mocks.MockPlayerRepository
	aids         *mocks.MockAidEngine
	clock        *testutil.FakeClock
	svc          services.GameService
}

func newFixture(t *testing.T) *gameServiceFixture {
	t.Helper()

	f := &gameServiceFixture{
		gameRepo:     new(mocks.MockGameRepository),
		questionRepo: new(mocks.MockQuestionRepository),
		playerRepo:   new(mocks.MockPlayerRepository),
		aids:         new(mocks.MockAidEngine),
		clock:        testutil.NewFakeClock(startedAt),
	}
	f.svc = services.NewGameService(
		f.gameRepo, f.questionRepo, f.playerRepo,
		game.DefaultPrizeTable(), f.aids, f.clock, timeLimit,
	)
	return f
}

func (f *gameServiceFixture) assertExpectations(t *testing.T) {
	f.gameRepo.AssertExpectations(t)
	f.questionRepo.AssertExpectations(t)
	f.playerRepo.AssertExpectations(t)
	f.aids.AssertExpectations(t)
}

func activeGame(level int) *models.Game {
	return &models.Game{
		ID:           42,
		PlayerID:     7,
		CurrentLevel: level,
		CreatedAt:    startedAt,
	}
}

func questionAt(level int) *models.GameQuestion {
	return &models.GameQuestion{
		ID:         int64(100 + level),
		GameID:     42,
		QuestionID: int64(200 + level),
		Level:      level,
		A:          2, B: 1, C: 4, D: 3,
		Question: &models.Question{
			ID:      int64(200 + level),
			Level:   level,
			Text:    fmt.Sprintf("question %d", level),
			Answer1: "right", Answer2: "w1", Answer3: "w2", Answer4: "w3",
		},
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestStartGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.playerRepo.On("Get", ctx, int64(7)).Return(&models.Player{ID: 7, Username: "vera"}, nil)
	f.gameRepo.On("Active", ctx, int64(7)).Return(nil, nil)
	for level := 0; level < 15; level++ {
		f.questionRepo.On("RandomByLevel", ctx, level).Return(questionAt(level).Question, nil)
	}
	f.gameRepo.On("Create", ctx, mock.AnythingOfType("*models.Game"), mock.AnythingOfType("[]models.GameQuestion")).
		Run(func(args mock.Arguments) {
			g := args.Get(1).(*models.Game)
			g.ID = 42
			ladder := args.Get(2).([]models.GameQuestion)
			require.Len(t, ladder, 15)
			for level, gq := range ladder {
				assert.Equal(t, level, gq.Level)
				// Letter columns always hold a permutation of 1..4.
				assert.ElementsMatch(t, []int{1, 2, 3, 4}, []int{gq.A, gq.B, gq.C, gq.D})
			}
		}).Return(nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 0).Return(questionAt(0), nil)

	state, err := f.svc.StartGame(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(42), state.ID)
	assert.Equal(t, models.StatusInProgress, state.Status)
	assert.Equal(t, 0, state.CurrentLevel)
	assert.Equal(t, 0, state.Prize)
	assert.Equal(t, startedAt, state.CreatedAt)
	require.NotNil(t, state.Question)
	assert.Equal(t, "question 0", state.Question.Text)
	assert.Len(t, state.Question.Variants, 4)
	assert.Empty(t, state.AidsUsed)

	f.assertExpectations(t)
}

func TestStartGame_PlayerNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.playerRepo.On("Get", ctx, int64(7)).Return(nil, nil)

	_, err := f.svc.StartGame(ctx, 7)
	assertAppError(t, err, apperrors.ErrCodeNotFound)
}

func TestStartGame_AlreadyInProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.playerRepo.On("Get", ctx, int64(7)).Return(&models.Player{ID: 7}, nil)
	f.gameRepo.On("Active", ctx, int64(7)).Return(activeGame(3), nil)

	_, err := f.svc.StartGame(ctx, 7)
	assertAppError(t, err, apperrors.ErrCodeGameInProgress)
	assert.Contains(t, err.Error(), "42")

	f.gameRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartGame_NotEnoughQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.playerRepo.On("Get", ctx, int64(7)).Return(&models.Player{ID: 7}, nil)
	f.gameRepo.On("Active", ctx, int64(7)).Return(nil, nil)
	f.questionRepo.On("RandomByLevel", ctx, 0).Return(questionAt(0).Question, nil)
	f.questionRepo.On("RandomByLevel", ctx, 1).Return(nil, nil)

	_, err := f.svc.StartGame(ctx, 7)
	assertAppError(t, err, apperrors.ErrCodeNotEnoughQuestions)

	// No partial game may be persisted.
	f.gameRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartGame_CreateRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.playerRepo.On("Get", ctx, int64(7)).Return(&models.Player{ID: 7}, nil)
	f.gameRepo.On("Active", ctx, int64(7)).Return(nil, nil).Once()
	for level := 0; level < 15; level++ {
		f.questionRepo.On("RandomByLevel", ctx, level).Return(questionAt(level).Question, nil)
	}
	f.gameRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(repository.ErrActiveGameExists)
	f.gameRepo.On("Active", ctx, int64(7)).Return(activeGame(0), nil).Once()

	_, err := f.svc.StartGame(ctx, 7)
	assertAppError(t, err, apperrors.ErrCodeGameInProgress)
}

func TestAnswerQuestion_CorrectAdvances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(4), nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 4).Return(questionAt(4), nil)
	f.gameRepo.On("Update", ctx, mock.MatchedBy(func(g *models.Game) bool {
		return g.CurrentLevel == 5 && !g.IsFailed && g.FinishedAt == nil
	})).Return(nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 5).Return(questionAt(5), nil)

	result, err := f.svc.AnswerQuestion(ctx, 42, 7, "b")
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, models.StatusInProgress, result.State.Status)
	assert.Equal(t, 5, result.State.CurrentLevel)
	assert.Equal(t, 0, result.State.Prize)
	assert.Equal(t, "question 5", result.State.Question.Text)

	f.gameRepo.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswerQuestion_WrongFailsWithCheckpointPrize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(4), nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 4).Return(questionAt(4), nil)
	f.gameRepo.On("Finish", ctx, mock.MatchedBy(func(g *models.Game) bool {
		return g.IsFailed && g.FinishedAt != nil && g.Prize == 1000
	}), 1000).Return(nil)

	result, err := f.svc.AnswerQuestion(ctx, 42, 7, "a")
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, models.StatusFail, result.State.Status)
	assert.Equal(t, 1000, result.State.Prize)
	assert.Nil(t, result.State.Question)
}

func TestAnswerQuestion_WrongBeforeFirstCheckpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(2), nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 2).Return(questionAt(2), nil)
	f.gameRepo.On("Finish", ctx, mock.MatchedBy(func(g *models.Game) bool {
		return g.IsFailed && g.Prize == 0
	}), 0).Return(nil)

	result, err := f.svc.AnswerQuestion(ctx, 42, 7, "c")
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, models.StatusFail, result.State.Status)
	assert.Equal(t, 0, result.State.Prize)
}

func TestAnswerQuestion_MalformedLetterIsWrong(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(2), nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 2).Return(questionAt(2), nil)
	f.gameRepo.On("Finish", ctx, mock.Anything, 0).Return(nil)

	result, err := f.svc.AnswerQuestion(ctx, 42, 7, "x")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, models.StatusFail, result.State.Status)
}

func TestAnswerQuestion_LastLevelWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(14), nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 14).Return(questionAt(14), nil)
	f.gameRepo.On("Finish", ctx, mock.MatchedBy(func(g *models.Game) bool {
		return g.CurrentLevel == 15 && !g.IsFailed && g.Prize == 1000000
	}), 1000000).Return(nil)

	result, err := f.svc.AnswerQuestion(ctx, 42, 7, "b")
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, models.StatusWon, result.State.Status)
	assert.Equal(t, 1000000, result.State.Prize)
	assert.Nil(t, result.State.Question)
}

func TestAnswerQuestion_FinishedGameIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := activeGame(5)
	finishedAt := startedAt.Add(10 * time.Minute)
	g.Prize = 1000
	g.FinishedAt = &finishedAt

	f.gameRepo.On("Get", ctx, int64(42)).Return(g, nil)

	result, err := f.svc.AnswerQuestion(ctx, 42, 7, "b")
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, models.StatusMoney, result.State.Status)

	f.gameRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.gameRepo.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswerQuestion_LazyTimeout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clock.Advance(timeLimit + time.Minute)

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(5), nil)
	f.gameRepo.On("Finish", ctx, mock.MatchedBy(func(g *models.Game) bool {
		// The recorded finish instant is the deadline itself.
		return g.IsFailed && g.Prize == 1000 &&
			g.FinishedAt != nil && g.FinishedAt.Equal(startedAt.Add(timeLimit))
	}), 1000).Return(nil)

	result, err := f.svc.AnswerQuestion(ctx, 42, 7, "b")
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, models.StatusTimeout, result.State.Status)
	assert.Equal(t, 1000, result.State.Prize)
}

func TestAnswerQuestion_NotOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(5), nil)

	_, err := f.svc.AnswerQuestion(ctx, 42, 99, "b")
	assertAppError(t, err, apperrors.ErrCodeNotFound)
}

func TestTakeMoney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(5), nil)
	f.gameRepo.On("Finish", ctx, mock.MatchedBy(func(g *models.Game) bool {
		return !g.IsFailed && g.Prize == 1000 && g.FinishedAt != nil
	}), 1000).Return(nil)

	state, err := f.svc.TakeMoney(ctx, 42, 7)
	require.NoError(t, err)

	assert.Equal(t, models.StatusMoney, state.Status)
	assert.Equal(t, 1000, state.Prize)
	assert.Nil(t, state.Question)
}

func TestTakeMoney_FinishedGameIsSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := activeGame(5)
	finishedAt := startedAt.Add(10 * time.Minute)
	g.Prize = 1000
	g.FinishedAt = &finishedAt

	f.gameRepo.On("Get", ctx, int64(42)).Return(g, nil)

	state, err := f.svc.TakeMoney(ctx, 42, 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMoney, state.Status)

	f.gameRepo.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything, mock.Anything)
}

func TestTakeMoney_LazyTimeout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clock.Advance(timeLimit + time.Second)

	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(2), nil)
	f.gameRepo.On("Finish", ctx, mock.MatchedBy(func(g *models.Game) bool {
		return g.IsFailed && g.Prize == 0
	}), 0).Return(nil)

	state, err := f.svc.TakeMoney(ctx, 42, 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTimeout, state.Status)
}

func TestUseAid_FiftyFifty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gq := questionAt(5)
	f.gameRepo.On("Get", ctx, int64(42)).Return(activeGame(5), nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 5).Return(gq, nil).Twice()
	f.aids.On("FiftyFifty", gq).Return([]string{"b", "d"})
	f.gameRepo.On("SaveAidUse", ctx, mock.MatchedBy(func(g *models.Game) bool {
		return g.FiftyFifty && !g.AudienceHelp && !g.FriendCall
	}), gq).Return(nil)

	result, err := f.svc.UseAid(ctx, 42, 7, models.AidFiftyFifty)
	require.NoError(t, err)

	assert.Equal(t, models.AidFiftyFifty, result.Kind)
	assert.Equal(t, []string{"b", "d"}, result.Help.FiftyFifty)
	assert.Equal(t, []models.AidKind{models.AidFiftyFifty}, result.State.AidsUsed)
	assert.Equal(t, []string{"b", "d"}, result.State.Question.AvailableKeys)
}

func TestUseAid_SecondUseRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := activeGame(5)
	g.FiftyFifty = true
	f.gameRepo.On("Get", ctx, int64(42)).Return(g, nil)

	_, err := f.svc.UseAid(ctx, 42, 7, models.AidFiftyFifty)
	assertAppError(t, err, apperrors.ErrCodeAidAlreadyUsed)

	f.gameRepo.AssertNotCalled(t, "SaveAidUse", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseAid_OtherKindStillAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := activeGame(5)
	g.FiftyFifty = true
	gq := questionAt(5)
	gq.Help.FiftyFifty = []string{"b", "d"}

	f.gameRepo.On("Get", ctx, int64(42)).Return(g, nil)
	f.gameRepo.On("QuestionAt", ctx, int64(42), 5).Return(gq, nil).Twice()
	f.aids.On("FriendCall", gq).Return("Max thinks the answer is B")
	f.gameRepo.On("SaveAidUse", ctx, mock.Anything, gq).Return(nil)

	result, err := f.svc.UseAid(ctx, 42, 7, models.AidFriendCall)
	require.NoError(t, err)
	assert.Equal(t, "Max thinks the answer is B", result.Help.FriendCall)
	assert.ElementsMatch(t, []models.AidKind{models.AidFiftyFifty, models.AidFriendCall}, result.State.AidsUsed)
}

func TestUseAid_FinishedGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := activeGame(5)
	finishedAt := startedAt.Add(10 * time.Minute)
	g.FinishedAt = &finishedAt

	f.gameRepo.On("Get", ctx, int64(42)).Return(g, nil)

	_, err := f.svc.UseAid(ctx, 42, 7, models.AidAudienceHelp)
	assertAppError(t, err, apperrors.ErrCodeGameNotInProgress)
}

func TestUseAid_UnknownKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UseAid(ctx, 42, 7, models.AidKind("phone_a_stranger"))
	assertAppError(t, err, apperrors.ErrCodeValidation)
}

func TestCurrentGame_NoneActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.gameRepo.On("Active", ctx, int64(7)).Return(nil, nil)

	_, err := f.svc.CurrentGame(ctx, 7)
	assertAppError(t, err, apperrors.ErrCodeNotFound)
}

func TestListGames_DerivesStatuses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	failedAt := startedAt.Add(5 * time.Minute)
	timedOutAt := startedAt.Add(timeLimit)
	failed := models.Game{ID: 1, PlayerID: 7, CurrentLevel: 2, IsFailed: true, CreatedAt: startedAt, FinishedAt: &failedAt}
	timedOut := models.Game{ID: 2, PlayerID: 7, CurrentLevel: 3, IsFailed: true, CreatedAt: startedAt, FinishedAt: &timedOutAt}
	running := models.Game{ID: 3, PlayerID: 7, CurrentLevel: 1, CreatedAt: startedAt}

	f.gameRepo.On("ListByPlayer", ctx, int64(7)).Return([]models.Game{failed, timedOut, running}, nil)

	summaries, err := f.svc.ListGames(ctx, 7)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, models.StatusFail, summaries[0].Status)
	assert.Equal(t, models.StatusTimeout, summaries[1].Status)
	assert.Equal(t, models.StatusInProgress, summaries[2].Status)
}
