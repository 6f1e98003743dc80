package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
)

func (c *HTTPClient) Topics(ctx context.Context) (*Envelope[[]models.Topic], error) {
	return Do[[]models.Topic](ctx, c, http.MethodGet, "/topics", nil)
}

func (c *HTTPClient) Topic(ctx context.Context, slug string) (*Envelope[models.Topic], error) {
	return Do[models.Topic](ctx, c, http.MethodGet, "/topics/"+url.PathEscape(slug), nil)
}

func (c *HTTPClient) TopicQuestions(ctx context.Context, slug string) (*Envelope[[]models.Question], error) {
	return Do[[]models.Question](ctx, c, http.MethodGet, "/topics/"+url.PathEscape(slug)+"/questions", nil)
}

func (c *HTTPClient) SimulationTopics(ctx context.Context) (*Envelope[[]models.Topic], error) {
	return Do[[]models.Topic](ctx, c, http.MethodGet, "/simulation/topics", nil)
}

func (c *HTTPClient) SimulationQuestion(ctx context.Context, slug string) (*Envelope[models.SimulationQuestion], error) {
	return Do[models.SimulationQuestion](ctx, c, http.MethodGet, "/simulation/topics/"+url.PathEscape(slug)+"/question", nil)
}

func (c *HTTPClient) SubmitAnswer(ctx context.Context, questionID int64, req models.SubmitAnswerRequest) (*Envelope[models.SubmitResult], error) {
	endpoint := fmt.Sprintf("/simulation/questions/%d/submit", questionID)
	return Do[models.SubmitResult](ctx, c, http.MethodPost, endpoint, req)
}
