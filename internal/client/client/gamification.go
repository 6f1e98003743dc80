package client

import (
	"context"
	"net/http"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
)

func (c *HTTPClient) UserAchievements(ctx context.Context) (*Envelope[[]models.Achievement], error) {
	return Do[[]models.Achievement](ctx, c, http.MethodGet, "/user/achievements", nil)
}

func (c *HTTPClient) UserProgress(ctx context.Context) (*Envelope[[]models.TopicProgress], error) {
	return Do[[]models.TopicProgress](ctx, c, http.MethodGet, "/user/progress", nil)
}

func (c *HTTPClient) UserAttempts(ctx context.Context) (*Envelope[[]models.Attempt], error) {
	return Do[[]models.Attempt](ctx, c, http.MethodGet, "/user/attempts", nil)
}

func (c *HTTPClient) Achievements(ctx context.Context) (*Envelope[[]models.Achievement], error) {
	return Do[[]models.Achievement](ctx, c, http.MethodGet, "/achievements", nil)
}

func (c *HTTPClient) Challenges(ctx context.Context) (*Envelope[[]models.Challenge], error) {
	return Do[[]models.Challenge](ctx, c, http.MethodGet, "/challenges", nil)
}

func (c *HTTPClient) DailyChallenge(ctx context.Context) (*Envelope[models.Challenge], error) {
	return Do[models.Challenge](ctx, c, http.MethodGet, "/challenges/daily", nil)
}
