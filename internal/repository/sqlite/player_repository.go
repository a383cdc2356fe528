package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
)

type playerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new PlayerRepository implementation
func NewPlayerRepository(db *sql.DB) repository.PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Upsert(ctx context.Context, username string) (*models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("upserting player for username: %s", username)

	var p models.Player
	err := r.db.QueryRowContext(ctx, `
INSERT INTO players (username)
VALUES (?)
ON CONFLICT(username) DO UPDATE SET username = excluded.username
RETURNING id, username, balance, created_at
`, username).Scan(&p.ID, &p.Username, &p.Balance, &p.CreatedAt)
	if err != nil {
		log.Error("failed to upsert player: %v", err)
		return nil, err
	}
	log.Debug("player upserted: id=%d", p.ID)
	return &p, nil
}

func (r *playerRepository) Get(ctx context.Context, id int64) (*models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("getting player: id=%d", id)

	var p models.Player
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, balance, created_at
FROM players
WHERE id = ?
`, id).Scan(&p.ID, &p.Username, &p.Balance, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get player: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) List(ctx context.Context) ([]models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("listing players")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, balance, created_at
FROM players
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list players: %v", err)
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Username, &p.Balance, &p.CreatedAt); err != nil {
			log.Error("failed to scan player row: %v", err)
			return nil, err
		}
		players = append(players, p)
	}

	log.Debug("found %d players", len(players))
	return players, rows.Err()
}

func (r *playerRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("deleting player: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete player: %v", err)
	}
	return err
}
