// Package httpapi exposes the backend's use cases as a JSON-over-HTTP API.
// Every response, successful or not, is a {status, message, data, errors}
// envelope.
package httpapi

import (
	"context"

	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/auth"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/services"
)

type Users interface {
	Authenticator
	Register(ctx context.Context, in services.RegisterInput) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

type Catalog interface {
	Topics(ctx context.Context) ([]models.Topic, error)
	Topic(ctx context.Context, slug string) (*models.Topic, error)
	TopicQuestions(ctx context.Context, slug string) ([]models.Question, error)
	SimulationTopics(ctx context.Context) ([]models.Topic, error)
	SimulationQuestion(ctx context.Context, slug string, userID int64) (*models.SimulationQuestion, error)
	Achievements(ctx context.Context) ([]models.Achievement, error)
	Challenges(ctx context.Context) ([]models.Challenge, error)
	DailyChallenge(ctx context.Context) (*models.Challenge, error)
}

type Attempts interface {
	Submit(ctx context.Context, in services.SubmitInput) (*models.SubmitResult, error)
	UserAttempts(ctx context.Context, userID int64) ([]models.Attempt, error)
	UserProgress(ctx context.Context, userID int64) ([]models.TopicProgress, error)
	UserAchievements(ctx context.Context, userID int64) ([]models.Achievement, error)
}

// RateLimit is the per-IP budget for login and register.
type RateLimit struct {
	PerMinute int
	Burst     int
}

type API struct {
	users    Users
	catalog  Catalog
	attempts Attempts
	logger   logging.Logger
	limiter  *ipLimiter
}

func New(us Users, cs Catalog, as Attempts, rl RateLimit, l logging.Logger) *API {
	return &API{
		users:    us,
		catalog:  cs,
		attempts: as,
		logger:   l.With("module", "http_api"),
		limiter:  newIPLimiter(rl.PerMinute, rl.Burst),
	}
}
