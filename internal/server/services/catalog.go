package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/repomanager"
)

// upcomingChallenges is how many challenges GET /challenges lists.
const upcomingChallenges = 7

type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m, now: time.Now}
}

func (s *CatalogService) Topics(ctx context.Context) ([]models.Topic, error) {
	return s.repomanager.Catalog(s.db).ListTopics(ctx, false)
}

func (s *CatalogService) SimulationTopics(ctx context.Context) ([]models.Topic, error) {
	return s.repomanager.Catalog(s.db).ListTopics(ctx, true)
}

// Topic returns common.ErrorNotFound for an unknown slug.
func (s *CatalogService) Topic(ctx context.Context, slug string) (*models.Topic, error) {
	return s.repomanager.Catalog(s.db).GetTopic(ctx, slug)
}

func (s *CatalogService) TopicQuestions(ctx context.Context, slug string) ([]models.Question, error) {
	repo := s.repomanager.Catalog(s.db)

	topic, err := repo.GetTopic(ctx, slug)
	if err != nil {
		return nil, err
	}

	questions, err := repo.ListQuestions(ctx, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	return questions, nil
}

// SimulationQuestion picks the next simulation question of the topic for
// the user.
func (s *CatalogService) SimulationQuestion(ctx context.Context, slug string, userID int64) (*models.SimulationQuestion, error) {
	repo := s.repomanager.Catalog(s.db)

	topic, err := repo.GetTopic(ctx, slug)
	if err != nil {
		return nil, err
	}

	q, err := repo.NextSimulationQuestion(ctx, topic.ID, userID)
	if err != nil {
		return nil, err
	}

	return &models.SimulationQuestion{
		Question:   *q,
		TopicSlug:  topic.Slug,
		Parameters: q.Parameters,
		Unit:       q.Unit,
	}, nil
}

func (s *CatalogService) Achievements(ctx context.Context) ([]models.Achievement, error) {
	return s.repomanager.Gamification(s.db).ListAchievements(ctx)
}

func (s *CatalogService) Challenges(ctx context.Context) ([]models.Challenge, error) {
	return s.repomanager.Gamification(s.db).ListChallenges(ctx, today(s.now()), upcomingChallenges)
}

// DailyChallenge returns the challenge active on the current UTC date.
func (s *CatalogService) DailyChallenge(ctx context.Context) (*models.Challenge, error) {
	return s.repomanager.Gamification(s.db).ChallengeOn(ctx, today(s.now()))
}

// today truncates t to its UTC calendar day.
func today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
