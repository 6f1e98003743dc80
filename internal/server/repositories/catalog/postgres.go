// Package catalog provides read access to topics and questions in PostgreSQL.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/dbx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

const topicSelect = `
	SELECT t.id, t.slug, t.title, t.description, t.difficulty,
	       COUNT(q.id), COALESCE(BOOL_OR(q.is_simulation), FALSE)
	FROM topics t
	LEFT JOIN questions q ON q.topic_id = t.id`

const questionColumns = `q.id, q.topic_id, q.text, q.options, q.difficulty, q.xp_reward, q.answer, q.tolerance, q.is_simulation, q.parameters, q.unit`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListTopics(ctx context.Context, simulationOnly bool) ([]models.Topic, error) {
	query := topicSelect + `
	GROUP BY t.id
	HAVING NOT $1 OR COALESCE(BOOL_OR(q.is_simulation), FALSE)
	ORDER BY t.position, t.id`

	rows, err := r.db.QueryContext(ctx, query, simulationOnly)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Slug, &t.Title, &t.Description, &t.Difficulty, &t.QuestionCount, &t.HasSimulation); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return topics, nil
}

func (r *PostgresRepository) GetTopic(ctx context.Context, slug string) (*models.Topic, error) {
	query := topicSelect + `
	WHERE t.slug = $1
	GROUP BY t.id`

	t := &models.Topic{}
	err := r.db.QueryRowContext(ctx, query, slug).
		Scan(&t.ID, &t.Slug, &t.Title, &t.Description, &t.Difficulty, &t.QuestionCount, &t.HasSimulation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListQuestions(ctx context.Context, topicID int64) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions q WHERE q.topic_id = $1 ORDER BY q.id`

	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return questions, nil
}

func (r *PostgresRepository) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions q WHERE q.id = $1`
	return r.oneQuestion(ctx, query, id)
}

func (r *PostgresRepository) NextSimulationQuestion(ctx context.Context, topicID, userID int64) (*models.Question, error) {
	query := `SELECT ` + questionColumns + `
	FROM questions q
	LEFT JOIN (
		SELECT question_id, MAX(created_at) AS last_at
		FROM attempts
		WHERE user_id = $2
		GROUP BY question_id
	) a ON a.question_id = q.id
	WHERE q.topic_id = $1 AND q.is_simulation
	ORDER BY a.last_at ASC NULLS FIRST, q.id
	LIMIT 1`
	return r.oneQuestion(ctx, query, topicID, userID)
}

func (r *PostgresRepository) oneQuestion(ctx context.Context, query string, args ...any) (*models.Question, error) {
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return q, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s scanner) (*models.Question, error) {
	q := &models.Question{}
	var options, params []byte

	err := s.Scan(&q.ID, &q.TopicID, &q.Text, &options, &q.Difficulty, &q.XPReward,
		&q.Answer, &q.Tolerance, &q.IsSimulation, &params, &q.Unit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(options) > 0 {
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("question %d options: %w", q.ID, err)
		}
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &q.Parameters); err != nil {
			return nil, fmt.Errorf("question %d parameters: %w", q.ID, err)
		}
	}
	if len(q.Options) == 0 {
		q.Options = nil
	}
	if len(q.Parameters) == 0 {
		q.Parameters = nil
	}
	return q, nil
}
