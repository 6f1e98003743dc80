package client

import (
	"context"
	"encoding/json"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
)

// Client is the typed surface of the backend API. Every method is a thin
// wrapper over Request that fixes the endpoint, method and payload shape.
type Client interface {
	Health(ctx context.Context) (*Envelope[json.RawMessage], error)

	Register(ctx context.Context, req models.RegisterRequest) (*Envelope[models.AuthPayload], error)
	Login(ctx context.Context, req models.LoginRequest) (*Envelope[models.AuthPayload], error)
	Profile(ctx context.Context) (*Envelope[models.ProfilePayload], error)
	Logout(ctx context.Context) (*Envelope[json.RawMessage], error)

	UserAchievements(ctx context.Context) (*Envelope[[]models.Achievement], error)
	UserProgress(ctx context.Context) (*Envelope[[]models.TopicProgress], error)
	UserAttempts(ctx context.Context) (*Envelope[[]models.Attempt], error)

	Topics(ctx context.Context) (*Envelope[[]models.Topic], error)
	Topic(ctx context.Context, slug string) (*Envelope[models.Topic], error)
	TopicQuestions(ctx context.Context, slug string) (*Envelope[[]models.Question], error)

	SimulationTopics(ctx context.Context) (*Envelope[[]models.Topic], error)
	SimulationQuestion(ctx context.Context, slug string) (*Envelope[models.SimulationQuestion], error)
	SubmitAnswer(ctx context.Context, questionID int64, req models.SubmitAnswerRequest) (*Envelope[models.SubmitResult], error)

	Achievements(ctx context.Context) (*Envelope[[]models.Achievement], error)
	Challenges(ctx context.Context) (*Envelope[[]models.Challenge], error)
	DailyChallenge(ctx context.Context) (*Envelope[models.Challenge], error)
}

var _ Client = (*HTTPClient)(nil)
