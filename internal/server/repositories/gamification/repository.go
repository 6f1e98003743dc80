package gamification

import (
	"context"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

type Repository interface {
	ListAchievements(ctx context.Context) ([]models.Achievement, error)
	// ListForUser is ListAchievements with Unlocked/UnlockedAt filled in.
	ListForUser(ctx context.Context, userID int64) ([]models.Achievement, error)
	// Unlock reports whether the achievement was newly unlocked.
	Unlock(ctx context.Context, userID, achievementID int64) (bool, error)
	ListChallenges(ctx context.Context, from time.Time, limit int) ([]models.Challenge, error)
	ChallengeOn(ctx context.Context, day time.Time) (*models.Challenge, error)
}
