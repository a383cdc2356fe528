package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
)

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository implementation
func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

const gameColumns = `id, player_id, current_level, prize, is_failed, fifty_fifty_used, audience_help_used, friend_call_used, created_at, finished_at`

func scanGame(row interface{ Scan(...any) error }) (*models.Game, error) {
	var g models.Game
	var finishedAt sql.NullTime
	err := row.Scan(&g.ID, &g.PlayerID, &g.CurrentLevel, &g.Prize, &g.IsFailed,
		&g.FiftyFifty, &g.AudienceHelp, &g.FriendCall, &g.CreatedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		g.FinishedAt = &t
	}
	return &g, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game, questions []models.GameQuestion) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("creating game: player_id=%d, questions=%d", game.PlayerID, len(questions))

	err := tx(ctx, r.db, func(t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `
INSERT INTO games (player_id, current_level, prize, is_failed, created_at)
VALUES (?, 0, 0, 0, ?)
`, game.PlayerID, game.CreatedAt)
		if err != nil {
			return err
		}
		gameID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		stmt, err := t.PrepareContext(ctx, `
INSERT INTO game_questions (game_id, question_id, level, a, b, c, d)
VALUES (?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range questions {
			gq := &questions[i]
			res, err := stmt.ExecContext(ctx, gameID, gq.QuestionID, gq.Level, gq.A, gq.B, gq.C, gq.D)
			if err != nil {
				return err
			}
			gq.ID, err = res.LastInsertId()
			if err != nil {
				return err
			}
			gq.GameID = gameID
		}

		game.ID = gameID
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("active game already exists: player_id=%d", game.PlayerID)
			return repository.ErrActiveGameExists
		}
		log.Error("failed to create game: %v", err)
		return err
	}

	log.Debug("game created: id=%d", game.ID)
	return nil
}

func (r *gameRepository) Get(ctx context.Context, id int64) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game: id=%d", id)

	g, err := scanGame(r.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get game: %v", err)
		return nil, err
	}
	return g, nil
}

func (r *gameRepository) Active(ctx context.Context, playerID int64) (*models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting active game: player_id=%d", playerID)

	g, err := scanGame(r.db.QueryRowContext(ctx, `
SELECT `+gameColumns+` FROM games
WHERE player_id = ? AND finished_at IS NULL
`, playerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get active game: %v", err)
		return nil, err
	}
	return g, nil
}

func (r *gameRepository) ListByPlayer(ctx context.Context, playerID int64) ([]models.Game, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing games: player_id=%d", playerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+gameColumns+` FROM games
WHERE player_id = ?
ORDER BY created_at DESC, id DESC
`, playerID)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, err
		}
		games = append(games, *g)
	}

	log.Debug("found %d games", len(games))
	return games, rows.Err()
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("updating game: id=%d, level=%d", game.ID, game.CurrentLevel)

	_, err := r.db.ExecContext(ctx, `
UPDATE games
SET current_level = ?, prize = ?, is_failed = ?, fifty_fifty_used = ?, audience_help_used = ?, friend_call_used = ?, finished_at = ?
WHERE id = ?
`, game.CurrentLevel, game.Prize, game.IsFailed, game.FiftyFifty, game.AudienceHelp, game.FriendCall, game.FinishedAt, game.ID)
	if err != nil {
		log.Error("failed to update game: %v", err)
	}
	return err
}

func (r *gameRepository) Finish(ctx context.Context, game *models.Game, credit int) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("finishing game: id=%d, prize=%d, credit=%d", game.ID, game.Prize, credit)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		_, err := t.ExecContext(ctx, `
UPDATE games
SET current_level = ?, prize = ?, is_failed = ?, finished_at = ?
WHERE id = ?
`, game.CurrentLevel, game.Prize, game.IsFailed, game.FinishedAt, game.ID)
		if err != nil {
			log.Error("failed to finish game: %v", err)
			return err
		}
		if credit > 0 {
			if _, err := t.ExecContext(ctx, `
UPDATE players SET balance = balance + ? WHERE id = ?
`, credit, game.PlayerID); err != nil {
				log.Error("failed to credit balance: %v", err)
				return err
			}
		}
		return nil
	})
}

const gameQuestionColumns = `
gq.id, gq.game_id, gq.question_id, gq.level, gq.a, gq.b, gq.c, gq.d, gq.help_hash, gq.created_at,
q.id, q.level, q.text, q.answer1, q.answer2, q.answer3, q.answer4, q.created_at`

func scanGameQuestion(row interface{ Scan(...any) error }) (*models.GameQuestion, error) {
	var gq models.GameQuestion
	var q models.Question
	var helpHash string
	err := row.Scan(&gq.ID, &gq.GameID, &gq.QuestionID, &gq.Level, &gq.A, &gq.B, &gq.C, &gq.D, &helpHash, &gq.CreatedAt,
		&q.ID, &q.Level, &q.Text, &q.Answer1, &q.Answer2, &q.Answer3, &q.Answer4, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(helpHash), &gq.Help); err != nil {
		return nil, err
	}
	gq.Question = &q
	return &gq, nil
}

func (r *gameRepository) QuestionAt(ctx context.Context, gameID int64, level int) (*models.GameQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("getting game question: game_id=%d, level=%d", gameID, level)

	gq, err := scanGameQuestion(r.db.QueryRowContext(ctx, `
SELECT `+gameQuestionColumns+`
FROM game_questions gq
JOIN questions q ON q.id = gq.question_id
WHERE gq.game_id = ? AND gq.level = ?
`, gameID, level))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get game question: %v", err)
		return nil, err
	}
	return gq, nil
}

func (r *gameRepository) Questions(ctx context.Context, gameID int64) ([]models.GameQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("listing game questions: game_id=%d", gameID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+gameQuestionColumns+`
FROM game_questions gq
JOIN questions q ON q.id = gq.question_id
WHERE gq.game_id = ?
ORDER BY gq.level ASC
`, gameID)
	if err != nil {
		log.Error("failed to list game questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.GameQuestion
	for rows.Next() {
		gq, err := scanGameQuestion(rows)
		if err != nil {
			log.Error("failed to scan game question row: %v", err)
			return nil, err
		}
		questions = append(questions, *gq)
	}
	return questions, rows.Err()
}

func (r *gameRepository) SaveAidUse(ctx context.Context, game *models.Game, question *models.GameQuestion) error {
	log := logger.FromContext(ctx).WithPrefix("game_repo")
	log.Debug("saving aid use: game_id=%d, level=%d", game.ID, question.Level)

	helpHash, err := json.Marshal(question.Help)
	if err != nil {
		return err
	}

	return tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `
UPDATE games
SET fifty_fifty_used = ?, audience_help_used = ?, friend_call_used = ?
WHERE id = ?
`, game.FiftyFifty, game.AudienceHelp, game.FriendCall, game.ID); err != nil {
			log.Error("failed to update aid flags: %v", err)
			return err
		}
		if _, err := t.ExecContext(ctx, `
UPDATE game_questions SET help_hash = ? WHERE id = ?
`, string(helpHash), question.ID); err != nil {
			log.Error("failed to update help hash: %v", err)
			return err
		}
		return nil
	})
}
