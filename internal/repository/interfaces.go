package repository

import (
	"context"
	"errors"

	"github.com/lbraga/millionaire/internal/models"
)

// ErrActiveGameExists is returned by GameRepository.Create when the player
// already has an unfinished game. The storage index enforces this even if
// the service pre-check raced.
var ErrActiveGameExists = errors.New("player already has an active game")

// PlayerRepository handles player data access
type PlayerRepository interface {
	Get(ctx context.Context, id int64) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Upsert(ctx context.Context, username string) (*models.Player, error)
	Delete(ctx context.Context, id int64) error
}

// QuestionRepository handles question catalog data access
type QuestionRepository interface {
	Insert(ctx context.Context, question models.Question) (int64, error)
	InsertBatch(ctx context.Context, questions []models.Question) ([]int64, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	RandomByLevel(ctx context.Context, level int) (*models.Question, error)
	CountByLevel(ctx context.Context) (map[int]int, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Count(ctx context.Context, filter models.QuestionFilter) (int, error)
}

// GameRepository handles game and game question data access
type GameRepository interface {
	// Create inserts the game and its full question ladder in one
	// transaction. Returns ErrActiveGameExists when the one-active-game
	// index rejects the insert.
	Create(ctx context.Context, game *models.Game, questions []models.GameQuestion) error
	Get(ctx context.Context, id int64) (*models.Game, error)
	// Active returns the player's unfinished game, nil when there is none.
	Active(ctx context.Context, playerID int64) (*models.Game, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	// Finish persists the terminal game state and credits the prize to the
	// owner's balance in the same transaction.
	Finish(ctx context.Context, game *models.Game, credit int) error
	QuestionAt(ctx context.Context, gameID int64, level int) (*models.GameQuestion, error)
	Questions(ctx context.Context, gameID int64) ([]models.GameQuestion, error)
	// SaveAidUse persists the game's aid flags together with the question's
	// stored help results.
	SaveAidUse(ctx context.Context, game *models.Game, question *models.GameQuestion) error
}
