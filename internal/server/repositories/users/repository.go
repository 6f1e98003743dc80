package users

import (
	"context"

	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// LockByID is GetByID with a row lock; call it inside a transaction.
	LockByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProgress(ctx context.Context, user *models.User) error
}
