package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/client"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/repositories/cache"
	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
)

// ErrRejected is returned when the server answers with status "error".
var ErrRejected = errors.New("request rejected by server")

// Result carries data together with where it came from. Degraded results
// were served from the local cache because the server was unreachable;
// FetchedAt is when that copy was downloaded.
type Result[T any] struct {
	Data      T
	Degraded  bool
	FetchedAt time.Time
}

// CatalogService reads the content and gamification catalog. Public
// catalog reads are cached and replayed while offline; user-scoped reads
// and answer submission always go to the server.
type CatalogService struct {
	api    client.Client
	cache  cache.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewCatalogService(api client.Client, repo cache.Repository, logger logging.Logger) *CatalogService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &CatalogService{
		api:    api,
		cache:  repo,
		logger: logger.With("component", "catalog"),
		now:    time.Now,
	}
}

func (s *CatalogService) Topics(ctx context.Context) (Result[[]models.Topic], error) {
	return cached(ctx, s, "/topics", s.api.Topics)
}

func (s *CatalogService) Topic(ctx context.Context, slug string) (Result[models.Topic], error) {
	return cached(ctx, s, "/topics/"+slug, func(ctx context.Context) (*client.Envelope[models.Topic], error) {
		return s.api.Topic(ctx, slug)
	})
}

func (s *CatalogService) TopicQuestions(ctx context.Context, slug string) (Result[[]models.Question], error) {
	return cached(ctx, s, "/topics/"+slug+"/questions", func(ctx context.Context) (*client.Envelope[[]models.Question], error) {
		return s.api.TopicQuestions(ctx, slug)
	})
}

func (s *CatalogService) SimulationTopics(ctx context.Context) (Result[[]models.Topic], error) {
	return cached(ctx, s, "/simulation/topics", s.api.SimulationTopics)
}

func (s *CatalogService) Achievements(ctx context.Context) (Result[[]models.Achievement], error) {
	return cached(ctx, s, "/achievements", s.api.Achievements)
}

func (s *CatalogService) Challenges(ctx context.Context) (Result[[]models.Challenge], error) {
	return cached(ctx, s, "/challenges", s.api.Challenges)
}

func (s *CatalogService) DailyChallenge(ctx context.Context) (Result[models.Challenge], error) {
	return cached(ctx, s, "/challenges/daily", s.api.DailyChallenge)
}

func (s *CatalogService) SimulationQuestion(ctx context.Context, slug string) (models.SimulationQuestion, error) {
	return live(ctx, func(ctx context.Context) (*client.Envelope[models.SimulationQuestion], error) {
		return s.api.SimulationQuestion(ctx, slug)
	})
}

func (s *CatalogService) SubmitAnswer(ctx context.Context, questionID int64, answer string, timeTaken time.Duration) (models.SubmitResult, error) {
	req := models.SubmitAnswerRequest{Answer: answer, TimeTaken: int(timeTaken.Round(time.Second) / time.Second)}
	return live(ctx, func(ctx context.Context) (*client.Envelope[models.SubmitResult], error) {
		return s.api.SubmitAnswer(ctx, questionID, req)
	})
}

func (s *CatalogService) UserAchievements(ctx context.Context) ([]models.Achievement, error) {
	return live(ctx, s.api.UserAchievements)
}

func (s *CatalogService) UserProgress(ctx context.Context) ([]models.TopicProgress, error) {
	return live(ctx, s.api.UserProgress)
}

func (s *CatalogService) UserAttempts(ctx context.Context) ([]models.Attempt, error) {
	return live(ctx, s.api.UserAttempts)
}

// Forget drops every cached response, e.g. when the user signs out.
func (s *CatalogService) Forget(ctx context.Context) error {
	return s.cache.Purge(ctx)
}

func live[T any](ctx context.Context, fetch func(context.Context) (*client.Envelope[T], error)) (T, error) {
	var zero T
	env, err := fetch(ctx)
	if err != nil {
		return zero, err
	}
	if !env.OK() {
		return zero, fmt.Errorf("%w: %s", ErrRejected, env.FailureMessage())
	}
	return env.Data, nil
}

// cached fetches from the server and records the answer under key. When
// the server cannot be reached it replays the recorded answer instead.
// Session expiry and HTTP errors are returned as they are.
func cached[T any](ctx context.Context, s *CatalogService, key string, fetch func(context.Context) (*client.Envelope[T], error)) (Result[T], error) {
	env, err := fetch(ctx)
	if err == nil {
		if !env.OK() {
			return Result[T]{}, fmt.Errorf("%w: %s", ErrRejected, env.FailureMessage())
		}
		now := s.now()
		s.store(ctx, key, env.Data, now)
		return Result[T]{Data: env.Data, FetchedAt: now}, nil
	}

	if !client.IsNetworkError(err) {
		return Result[T]{}, err
	}

	hit, cerr := s.cache.Get(ctx, key)
	if errors.Is(cerr, common.ErrorNotFound) {
		return Result[T]{}, fmt.Errorf("%w: %w", client.ErrLocalDataNotAvailable, err)
	}
	if cerr != nil {
		s.logger.Warn(ctx, "reading cached response failed", "key", key, "error", cerr)
		return Result[T]{}, err
	}

	var data T
	if uerr := json.Unmarshal(hit.Payload, &data); uerr != nil {
		s.logger.Warn(ctx, "cached response is unreadable, dropping it", "key", key, "error", uerr)
		_ = s.cache.Delete(ctx, key)
		return Result[T]{}, fmt.Errorf("%w: %w", client.ErrLocalDataNotAvailable, err)
	}

	s.logger.Info(ctx, "server unreachable, serving cached copy", "key", key, "fetched_at", hit.FetchedAt)
	return Result[T]{Data: data, Degraded: true, FetchedAt: hit.FetchedAt}, nil
}

func (s *CatalogService) store(ctx context.Context, key string, data any, at time.Time) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn(ctx, "encoding response for cache failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Put(ctx, key, payload, at); err != nil {
		s.logger.Warn(ctx, "caching response failed", "key", key, "error", err)
	}
}
