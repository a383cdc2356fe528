package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lbraga/millionaire/internal/errors"
	"github.com/lbraga/millionaire/internal/game"
	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
)

// QuestionView is the player-facing projection of the current round. It
// never carries the correct key or the letter mapping.
type QuestionView struct {
	Level         int               `json:"level"`
	Text          string            `json:"text"`
	Variants      map[string]string `json:"variants"`
	AvailableKeys []string          `json:"available_keys"`
	Help          models.HelpHash   `json:"help"`
}

// GameState is the full view of one game for its owner.
type GameState struct {
	ID              int64             `json:"id"`
	Status          models.GameStatus `json:"status"`
	CurrentLevel    int               `json:"current_level"`
	Prize           int               `json:"prize"`
	CheckpointPrize int               `json:"checkpoint_prize"`
	AidsUsed        []models.AidKind  `json:"aids_used"`
	CreatedAt       time.Time         `json:"created_at"`
	FinishedAt      *time.Time        `json:"finished_at,omitempty"`
	Question        *QuestionView     `json:"question,omitempty"`
}

// GameSummary is the history-listing view of a game.
type GameSummary struct {
	ID           int64             `json:"id"`
	Status       models.GameStatus `json:"status"`
	CurrentLevel int               `json:"current_level"`
	Prize        int               `json:"prize"`
	CreatedAt    time.Time         `json:"created_at"`
	FinishedAt   *time.Time        `json:"finished_at,omitempty"`
}

// AnswerResult reports the outcome of one submitted answer.
type AnswerResult struct {
	Correct bool       `json:"correct"`
	State   *GameState `json:"game"`
}

// AidResult carries the computed help for display plus the updated game.
type AidResult struct {
	Kind  models.AidKind  `json:"kind"`
	Help  models.HelpHash `json:"help"`
	State *GameState      `json:"game"`
}

// GameService handles game session business logic
type GameService interface {
	StartGame(ctx context.Context, playerID int64) (*GameState, error)
	CurrentGame(ctx context.Context, playerID int64) (*GameState, error)
	GetGame(ctx context.Context, gameID, playerID int64) (*GameState, error)
	ListGames(ctx context.Context, playerID int64) ([]GameSummary, error)
	AnswerQuestion(ctx context.Context, gameID, playerID int64, key string) (*AnswerResult, error)
	TakeMoney(ctx context.Context, gameID, playerID int64) (*GameState, error)
	UseAid(ctx context.Context, gameID, playerID int64, kind models.AidKind) (*AidResult, error)
}

type gameService struct {
	gameRepo     repository.GameRepository
	questionRepo repository.QuestionRepository
	playerRepo   repository.PlayerRepository
	prizes       *game.PrizeTable
	aids         game.AidEngine
	clock        Clock
	timeLimit    time.Duration
}

// NewGameService creates a new GameService
func NewGameService(
	gameRepo repository.GameRepository,
	questionRepo repository.QuestionRepository,
	playerRepo repository.PlayerRepository,
	prizes *game.PrizeTable,
	aids game.AidEngine,
	clock Clock,
	timeLimit time.Duration,
) GameService {
	return &gameService{
		gameRepo:     gameRepo,
		questionRepo: questionRepo,
		playerRepo:   playerRepo,
		prizes:       prizes,
		aids:         aids,
		clock:        clock,
		timeLimit:    timeLimit,
	}
}

func (s *gameService) StartGame(ctx context.Context, playerID int64) (*GameState, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting game: player_id=%d", playerID)

	player, err := s.playerRepo.Get(ctx, playerID)
	if err != nil {
		log.Error("failed to get player: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if player == nil {
		return nil, errors.NewNotFoundError("player", playerID)
	}

	active, err := s.gameRepo.Active(ctx, playerID)
	if err != nil {
		log.Error("failed to check for active game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if active != nil {
		return nil, errors.NewGameAlreadyInProgressError(active.ID)
	}

	ladder := make([]models.GameQuestion, 0, s.prizes.Height())
	for level := 0; level < s.prizes.Height(); level++ {
		question, err := s.questionRepo.RandomByLevel(ctx, level)
		if err != nil {
			log.Error("failed to draw question for level %d: %v", level, err)
			return nil, errors.NewInternalError(err)
		}
		if question == nil {
			return nil, errors.NewNotEnoughQuestionsError(level)
		}
		slots := game.ShuffleSlots()
		ladder = append(ladder, models.GameQuestion{
			QuestionID: question.ID,
			Level:      level,
			A:          slots[0],
			B:          slots[1],
			C:          slots[2],
			D:          slots[3],
			Question:   question,
		})
	}

	g := &models.Game{
		PlayerID:  playerID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.gameRepo.Create(ctx, g, ladder); err != nil {
		if err == repository.ErrActiveGameExists {
			// Lost the race against a concurrent start.
			active, activeErr := s.gameRepo.Active(ctx, playerID)
			if activeErr == nil && active != nil {
				return nil, errors.NewGameAlreadyInProgressError(active.ID)
			}
			return nil, errors.NewGameAlreadyInProgressError(0)
		}
		log.Error("failed to create game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("game started: id=%d, player_id=%d", g.ID, playerID)
	return s.state(ctx, g)
}

func (s *gameService) CurrentGame(ctx context.Context, playerID int64) (*GameState, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting current game: player_id=%d", playerID)

	g, err := s.gameRepo.Active(ctx, playerID)
	if err != nil {
		log.Error("failed to get active game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if g == nil {
		return nil, errors.NewNotFoundError("active game for player", playerID)
	}
	return s.state(ctx, g)
}

func (s *gameService) GetGame(ctx context.Context, gameID, playerID int64) (*GameState, error) {
	g, err := s.loadOwnedGame(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	return s.state(ctx, g)
}

func (s *gameService) ListGames(ctx context.Context, playerID int64) ([]GameSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games: player_id=%d", playerID)

	games, err := s.gameRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, errors.NewInternalError(err)
	}

	summaries := make([]GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, GameSummary{
			ID:           g.ID,
			Status:       g.Status(s.prizes.LastLevel(), s.timeLimit),
			CurrentLevel: g.CurrentLevel,
			Prize:        g.Prize,
			CreatedAt:    g.CreatedAt,
			FinishedAt:   g.FinishedAt,
		})
	}
	return summaries, nil
}

func (s *gameService) AnswerQuestion(ctx context.Context, gameID, playerID int64, key string) (*AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("answering question: game_id=%d, key=%s", gameID, key)

	g, err := s.loadOwnedGame(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.applyTimeout(ctx, g); err != nil {
		return nil, err
	}

	// Answering a finished game is a no-op that reads as incorrect.
	if g.Finished() {
		state, err := s.state(ctx, g)
		if err != nil {
			return nil, err
		}
		return &AnswerResult{Correct: false, State: state}, nil
	}

	gq, err := s.currentQuestion(ctx, g)
	if err != nil {
		return nil, err
	}

	if !gq.AnswerCorrect(key) {
		now := s.clock.Now()
		g.IsFailed = true
		g.Prize = s.prizes.CheckpointPrizeBelow(g.CurrentLevel)
		g.FinishedAt = &now
		if err := s.gameRepo.Finish(ctx, g, g.Prize); err != nil {
			log.Error("failed to finish failed game: %v", err)
			return nil, errors.NewInternalError(err)
		}
		log.Info("game failed: id=%d, level=%d, prize=%d", g.ID, g.CurrentLevel, g.Prize)

		state, err := s.state(ctx, g)
		if err != nil {
			return nil, err
		}
		return &AnswerResult{Correct: false, State: state}, nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > s.prizes.LastLevel() {
		now := s.clock.Now()
		g.Prize = s.prizes.TopPrize()
		g.FinishedAt = &now
		if err := s.gameRepo.Finish(ctx, g, g.Prize); err != nil {
			log.Error("failed to finish won game: %v", err)
			return nil, errors.NewInternalError(err)
		}
		log.Info("game won: id=%d, prize=%d", g.ID, g.Prize)
	} else {
		if err := s.gameRepo.Update(ctx, g); err != nil {
			log.Error("failed to advance game: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	state, err := s.state(ctx, g)
	if err != nil {
		return nil, err
	}
	return &AnswerResult{Correct: true, State: state}, nil
}

func (s *gameService) TakeMoney(ctx context.Context, gameID, playerID int64) (*GameState, error) {
	log := logger.FromContext(ctx)
	log.Debug("taking money: game_id=%d", gameID)

	g, err := s.loadOwnedGame(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.applyTimeout(ctx, g); err != nil {
		return nil, err
	}

	// Banking a finished game changes nothing.
	if g.Finished() {
		return s.state(ctx, g)
	}

	now := s.clock.Now()
	g.Prize = s.prizes.PrizeAt(g.PreviousLevel())
	g.FinishedAt = &now
	if err := s.gameRepo.Finish(ctx, g, g.Prize); err != nil {
		log.Error("failed to bank game: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("money taken: game_id=%d, prize=%d", g.ID, g.Prize)
	return s.state(ctx, g)
}

func (s *gameService) UseAid(ctx context.Context, gameID, playerID int64, kind models.AidKind) (*AidResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("using aid: game_id=%d, kind=%s", gameID, kind)

	switch kind {
	case models.AidFiftyFifty, models.AidAudienceHelp, models.AidFriendCall:
	default:
		return nil, errors.NewValidationError("kind", "must be 'fifty_fifty', 'audience_help' or 'friend_call'")
	}

	g, err := s.loadOwnedGame(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.applyTimeout(ctx, g); err != nil {
		return nil, err
	}

	if g.AidUsed(kind) {
		return nil, errors.NewAidAlreadyUsedError(string(kind))
	}
	if g.Finished() {
		return nil, errors.NewGameNotInProgressError()
	}

	gq, err := s.currentQuestion(ctx, g)
	if err != nil {
		return nil, err
	}

	// Results are computed once and replayed from storage afterwards.
	switch kind {
	case models.AidFiftyFifty:
		if len(gq.Help.FiftyFifty) == 0 {
			gq.Help.FiftyFifty = s.aids.FiftyFifty(gq)
		}
	case models.AidAudienceHelp:
		if len(gq.Help.AudienceHelp) == 0 {
			gq.Help.AudienceHelp = s.aids.AudienceVotes(gq)
		}
	case models.AidFriendCall:
		if gq.Help.FriendCall == "" {
			gq.Help.FriendCall = s.aids.FriendCall(gq)
		}
	}

	g.MarkAidUsed(kind)
	if err := s.gameRepo.SaveAidUse(ctx, g, gq); err != nil {
		log.Error("failed to save aid use: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("aid used: game_id=%d, kind=%s", g.ID, kind)
	state, err := s.state(ctx, g)
	if err != nil {
		return nil, err
	}
	return &AidResult{Kind: kind, Help: gq.Help, State: state}, nil
}

func (s *gameService) loadOwnedGame(ctx context.Context, gameID, playerID int64) (*models.Game, error) {
	log := logger.FromContext(ctx)

	g, err := s.gameRepo.Get(ctx, gameID)
	if err != nil {
		log.Error("failed to get game: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if g == nil || g.PlayerID != playerID {
		return nil, errors.NewNotFoundError("game", gameID)
	}
	return g, nil
}

// applyTimeout expires an in-progress game whose time limit has passed.
// The recorded finish instant is the deadline itself, so the derived
// status stays timeout no matter when it is read.
func (s *gameService) applyTimeout(ctx context.Context, g *models.Game) (bool, error) {
	if g.Finished() || s.clock.Now().Sub(g.CreatedAt) <= s.timeLimit {
		return false, nil
	}
	log := logger.FromContext(ctx)

	deadline := g.CreatedAt.Add(s.timeLimit)
	g.IsFailed = true
	g.Prize = s.prizes.CheckpointPrizeBelow(g.CurrentLevel)
	g.FinishedAt = &deadline
	if err := s.gameRepo.Finish(ctx, g, g.Prize); err != nil {
		log.Error("failed to time out game: %v", err)
		return false, errors.NewInternalError(err)
	}

	log.Info("game timed out: id=%d, prize=%d", g.ID, g.Prize)
	return true, nil
}

func (s *gameService) currentQuestion(ctx context.Context, g *models.Game) (*models.GameQuestion, error) {
	log := logger.FromContext(ctx)

	gq, err := s.gameRepo.QuestionAt(ctx, g.ID, g.CurrentLevel)
	if err != nil {
		log.Error("failed to load current question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if gq == nil {
		return nil, errors.NewInternalError(fmt.Errorf("game %d has no question at level %d", g.ID, g.CurrentLevel))
	}
	return gq, nil
}

func (s *gameService) state(ctx context.Context, g *models.Game) (*GameState, error) {
	state := &GameState{
		ID:              g.ID,
		Status:          g.Status(s.prizes.LastLevel(), s.timeLimit),
		CurrentLevel:    g.CurrentLevel,
		Prize:           g.Prize,
		CheckpointPrize: s.prizes.CheckpointPrizeBelow(g.CurrentLevel),
		AidsUsed:        g.AidsUsed(),
		CreatedAt:       g.CreatedAt,
		FinishedAt:      g.FinishedAt,
	}

	if !g.Finished() {
		gq, err := s.currentQuestion(ctx, g)
		if err != nil {
			return nil, err
		}
		state.Question = &QuestionView{
			Level:         gq.Level,
			Text:          gq.Text(),
			Variants:      gq.Variants(),
			AvailableKeys: gq.AvailableKeys(),
			Help:          gq.Help,
		}
	}
	return state, nil
}
