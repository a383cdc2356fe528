package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lbraga/millionaire/internal/logger"
	"github.com/lbraga/millionaire/internal/models"
	"github.com/lbraga/millionaire/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Insert(ctx context.Context, q models.Question) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("inserting question: level=%d", q.Level)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO questions (level, text, answer1, answer2, answer3, answer4)
VALUES (?, ?, ?, ?, ?, ?)
`, q.Level, q.Text, q.Answer1, q.Answer2, q.Answer3, q.Answer4)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get question id: %v", err)
		return 0, err
	}
	log.Debug("question inserted: id=%d", id)
	return id, nil
}

func (r *questionRepository) InsertBatch(ctx context.Context, questions []models.Question) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("inserting question batch: count=%d", len(questions))

	ids := make([]int64, 0, len(questions))
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO questions (level, text, answer1, answer2, answer3, answer4)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, q := range questions {
			res, err := stmt.ExecContext(ctx, q.Level, q.Text, q.Answer1, q.Answer2, q.Answer3, q.Answer4)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert question batch: %v", err)
		return nil, err
	}
	log.Debug("question batch inserted: count=%d", len(ids))
	return ids, nil
}

func (r *questionRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%d", id)

	var q models.Question
	err := r.db.QueryRowContext(ctx, `
SELECT id, level, text, answer1, answer2, answer3, answer4, created_at
FROM questions
WHERE id = ?
`, id).Scan(&q.ID, &q.Level, &q.Text, &q.Answer1, &q.Answer2, &q.Answer3, &q.Answer4, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) RandomByLevel(ctx context.Context, level int) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("picking random question: level=%d", level)

	var q models.Question
	err := r.db.QueryRowContext(ctx, `
SELECT id, level, text, answer1, answer2, answer3, answer4, created_at
FROM questions
WHERE level = ?
ORDER BY RANDOM()
LIMIT 1
`, level).Scan(&q.ID, &q.Level, &q.Text, &q.Answer1, &q.Answer2, &q.Answer3, &q.Answer4, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to pick random question: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) CountByLevel(ctx context.Context) (map[int]int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("counting questions per level")

	rows, err := r.db.QueryContext(ctx, `
SELECT level, COUNT(*)
FROM questions
GROUP BY level
`)
	if err != nil {
		log.Error("failed to count questions per level: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			log.Error("failed to scan level count row: %v", err)
			return nil, err
		}
		counts[level] = count
	}
	return counts, rows.Err()
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: level=%d search=%q limit=%d offset=%d", filter.Level, filter.Search, filter.Limit, filter.Offset)

	query := sqlBuilder.
		Select("id", "level", "text", "answer1", "answer2", "answer3", "answer4", "created_at").
		From("questions").
		OrderBy("level ASC", "id ASC")

	query = applyQuestionFilter(query, filter)
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Level, &q.Text, &q.Answer1, &q.Answer2, &q.Answer3, &q.Answer4, &q.CreatedAt); err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		questions = append(questions, q)
	}

	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) Count(ctx context.Context, filter models.QuestionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	query := sqlBuilder.Select("COUNT(*)").From("questions")
	query = applyQuestionFilter(query, filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count questions: %v", err)
		return 0, err
	}
	return count, nil
}

func applyQuestionFilter(query squirrel.SelectBuilder, filter models.QuestionFilter) squirrel.SelectBuilder {
	if filter.Level >= 0 {
		query = query.Where(squirrel.Eq{"level": filter.Level})
	}
	if filter.Search != "" {
		query = query.Where(squirrel.Like{"text": fmt.Sprintf("%%%s%%", filter.Search)})
	}
	return query
}
