package services

import (
	"context"
	"time"

	"github.com/lbraga/millionaire/internal/errors"
	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
)

// PlayerStats aggregates a player's game history.
type PlayerStats struct {
	PlayerID      int64                     `json:"player_id"`
	Balance       int                       `json:"balance"`
	TotalGames    int                       `json:"total_games"`
	ByStatus      map[models.GameStatus]int `json:"by_status"`
	TotalWinnings int                       `json:"total_winnings"`
	BestPrize     int                       `json:"best_prize"`
	BestLevel     int                       `json:"best_level"`
}

// StatsService handles per-player statistics
type StatsService interface {
	PlayerStats(ctx context.Context, playerID int64) (*PlayerStats, error)
}

type statsService struct {
	gameRepo   repository.GameRepository
	playerRepo repository.PlayerRepository
	lastLevel  int
	timeLimit  time.Duration
}

// NewStatsService creates a new StatsService
func NewStatsService(gameRepo repository.GameRepository, playerRepo repository.PlayerRepository, lastLevel int, timeLimit time.Duration) StatsService {
	return &statsService{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		lastLevel:  lastLevel,
		timeLimit:  timeLimit,
	}
}

func (s *statsService) PlayerStats(ctx context.Context, playerID int64) (*PlayerStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing player stats: player_id=%d", playerID)

	player, err := s.playerRepo.Get(ctx, playerID)
	if err != nil {
		log.Error("failed to get player: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if player == nil {
		return nil, errors.NewNotFoundError("player", playerID)
	}

	games, err := s.gameRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats := &PlayerStats{
		PlayerID:   playerID,
		Balance:    player.Balance,
		TotalGames: len(games),
		ByStatus:   make(map[models.GameStatus]int),
	}
	for _, g := range games {
		status := g.Status(s.lastLevel, s.timeLimit)
		stats.ByStatus[status]++
		stats.TotalWinnings += g.Prize
		if g.Prize > stats.BestPrize {
			stats.BestPrize = g.Prize
		}
		if g.CurrentLevel > stats.BestLevel {
			stats.BestLevel = g.CurrentLevel
		}
	}
	return stats, nil
}
