// Package gamification stores achievements, unlocks and daily challenges.
package gamification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/dbx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	query := `
		SELECT id, code, name, description, xp_reward, criterion, threshold
		FROM achievements
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Achievement{}
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.XPReward, &a.Criterion, &a.Threshold); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64) ([]models.Achievement, error) {
	query := `
		SELECT a.id, a.code, a.name, a.description, a.xp_reward, a.criterion, a.threshold, ua.unlocked_at
		FROM achievements a
		LEFT JOIN user_achievements ua ON ua.achievement_id = a.id AND ua.user_id = $1
		ORDER BY a.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Achievement{}
	for rows.Next() {
		var (
			a        models.Achievement
			unlocked sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.XPReward, &a.Criterion, &a.Threshold, &unlocked); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if unlocked.Valid {
			t := unlocked.Time
			a.Unlocked = true
			a.UnlockedAt = &t
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Unlock(ctx context.Context, userID, achievementID int64) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, userID, achievementID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

const challengeColumns = `id, title, description, target, xp_reward, active_on`

func (r *PostgresRepository) ListChallenges(ctx context.Context, from time.Time, limit int) ([]models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE active_on >= $1 ORDER BY active_on LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, from, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Challenge{}
	for rows.Next() {
		var c models.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Target, &c.XPReward, &c.ActiveOn); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) ChallengeOn(ctx context.Context, day time.Time) (*models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE active_on = $1`

	c := &models.Challenge{}
	err := r.db.QueryRowContext(ctx, query, day).Scan(&c.ID, &c.Title, &c.Description, &c.Target, &c.XPReward, &c.ActiveOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
