package catalog

import (
	"context"

	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
)

type Repository interface {
	ListTopics(ctx context.Context, simulationOnly bool) ([]models.Topic, error)
	GetTopic(ctx context.Context, slug string) (*models.Topic, error)
	ListQuestions(ctx context.Context, topicID int64) ([]models.Question, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	// NextSimulationQuestion picks the topic's simulation question the user
	// attempted least recently, never-attempted ones first.
	NextSimulationQuestion(ctx context.Context, topicID, userID int64) (*models.Question, error)
}
