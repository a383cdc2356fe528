package services

import (
	"context"

	"github.com/lbraga/millionaire/internal/errors"
	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
)

// PlayerService handles player-related business logic
type PlayerService interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	CreatePlayer(ctx context.Context, username string) (*models.Player, error)
	GetPlayer(ctx context.Context, id int64) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int64) error
}

type playerService struct {
	playerRepo repository.PlayerRepository
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(playerRepo repository.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing players")

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		log.Error("failed to list players: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return players, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, username string) (*models.Player, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating player: username=%s", username)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	player, err := s.playerRepo.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to create player: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting player: id=%d", id)

	player, err := s.playerRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get player: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if player == nil {
		return nil, errors.NewNotFoundError("player", id)
	}

	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting player: id=%d", id)

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete player: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}
