package client

import (
	"context"
	"net/http"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
)

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*Envelope[models.AuthPayload], error) {
	return Do[models.AuthPayload](ctx, c, http.MethodPost, "/auth/register", req)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*Envelope[models.AuthPayload], error) {
	return Do[models.AuthPayload](ctx, c, http.MethodPost, "/auth/login", req)
}

func (c *HTTPClient) Profile(ctx context.Context) (*Envelope[models.ProfilePayload], error) {
	return Do[models.ProfilePayload](ctx, c, http.MethodGet, "/auth/profile", nil)
}
