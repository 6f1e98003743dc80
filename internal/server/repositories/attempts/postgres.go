// Package attempts stores answer attempts and derives per-user progress.
package attempts

import (
	"context"
	"fmt"
	"math"

	"github.com/Sinduaditya/fisikaap-sub000/internal/dbx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a; a.ID must already be set. CreatedAt is filled from the
// database clock.
func (r *PostgresRepository) Create(ctx context.Context, a *models.Attempt) error {
	query := `
		INSERT INTO attempts (id, user_id, question_id, answer, is_correct, score, time_taken)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.QuestionID, a.Answer, a.IsCorrect, a.Score, a.TimeTaken).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns the user's most recent attempts first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Attempt, error) {
	query := `
		SELECT id, user_id, question_id, answer, is_correct, score, time_taken, created_at
		FROM attempts
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Attempt{}
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.Answer, &a.IsCorrect, &a.Score, &a.TimeTaken, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) HasCorrect(ctx context.Context, userID, questionID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM attempts WHERE user_id = $1 AND question_id = $2 AND is_correct)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID, questionID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) CountCorrect(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(DISTINCT question_id) FROM attempts WHERE user_id = $1 AND is_correct`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Progress returns, for every topic, how many of its questions the user has
// answered correctly at least once.
func (r *PostgresRepository) Progress(ctx context.Context, userID int64) ([]models.TopicProgress, error) {
	query := `
		SELECT t.id, t.slug, t.title,
		       COUNT(DISTINCT a.question_id) FILTER (WHERE a.is_correct),
		       COUNT(DISTINCT q.id)
		FROM topics t
		LEFT JOIN questions q ON q.topic_id = t.id
		LEFT JOIN attempts a ON a.question_id = q.id AND a.user_id = $1
		GROUP BY t.id
		ORDER BY t.position, t.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.TopicProgress{}
	for rows.Next() {
		var p models.TopicProgress
		if err := rows.Scan(&p.TopicID, &p.TopicSlug, &p.TopicTitle, &p.Completed, &p.Total); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if p.Total > 0 {
			p.Percentage = math.Round(float64(p.Completed)/float64(p.Total)*10000) / 100
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}
