package attempts

import (
	"context"

	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Attempt) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Attempt, error)
	// HasCorrect reports whether the user already answered questionID correctly.
	HasCorrect(ctx context.Context, userID, questionID int64) (bool, error)
	// CountCorrect counts distinct questions the user answered correctly.
	CountCorrect(ctx context.Context, userID int64) (int, error)
	Progress(ctx context.Context, userID int64) ([]models.TopicProgress, error)
}
