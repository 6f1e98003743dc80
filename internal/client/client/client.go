package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// TokenStore is the durable credential the client reads before every call
// and purges on session expiry. PurgeToken must remove the session only
// while the stored token still equals token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	PurgeToken(ctx context.Context, token string) (bool, error)
}

// Requester performs one envelope round trip. HTTPClient is the production
// implementation; Do works with any Requester.
type Requester interface {
	Request(ctx context.Context, method, endpoint string, body []byte) (*Envelope[json.RawMessage], error)
}

const defaultHealthTimeout = 5 * time.Second

type HTTPClient struct {
	rc            *resty.Client
	tokens        TokenStore
	logger        logging.Logger
	httpTimeout   time.Duration
	healthTimeout time.Duration
	debug         bool
	transport     http.RoundTripper
}

// New builds a client for baseURL (e.g. "https://api.example.com/api").
// Endpoints passed to Request are appended to it.
func New(baseURL string, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}
	if tokens == nil {
		return nil, errors.New("token store cannot be nil")
	}

	c := &HTTPClient{
		tokens:        tokens,
		logger:        logging.Nop(),
		healthTimeout: defaultHealthTimeout,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{l: c.logger}).
		SetDebug(c.debug).
		SetRetryCount(0)
	if c.transport != nil {
		rc.SetTransport(c.transport)
	}
	if c.httpTimeout > 0 {
		rc.SetTimeout(c.httpTimeout)
	}
	c.rc = rc

	return c, nil
}

// Request performs one call and interprets the response. body, when not nil,
// must already be JSON.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, body []byte) (*Envelope[json.RawMessage], error) {
	start := time.Now()
	env, err := c.request(ctx, method, endpoint, body)

	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(method, outcomeOf(err)).Inc()
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "endpoint", endpoint, "error", err)
	}
	return env, err
}

func (c *HTTPClient) request(ctx context.Context, method, endpoint string, body []byte) (*Envelope[json.RawMessage], error) {
	req := c.rc.R().
		SetContext(ctx).
		SetHeader(common.RequestIDHeader, uuid.NewString())

	token := c.token(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, &NetworkError{Method: method, Endpoint: endpoint, Err: err}
	}

	// 401 wins over everything else, including an unreadable body.
	if resp.StatusCode() == http.StatusUnauthorized {
		c.expireSession(ctx, endpoint, token)
		return nil, newSessionExpiredError(resp.Body())
	}

	if !resp.IsSuccess() {
		return nil, newHTTPError(resp.StatusCode(), resp.Body())
	}

	raw := bytes.TrimSpace(resp.Body())
	if len(raw) == 0 {
		return &Envelope[json.RawMessage]{Status: StatusSuccess}, nil
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &MalformedResponseError{StatusCode: resp.StatusCode(), Err: err}
	}
	return &env, nil
}

type tokenKey struct{}

// WithToken returns a context whose requests authenticate with token instead
// of the stored credential. It lets a caller finish a call on behalf of a
// session whose local credentials are already gone, such as the remote half
// of a logout.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// token reads the stored credential. A read failure is logged and treated
// as "not logged in": the server answers 401 and the session is purged.
func (c *HTTPClient) token(ctx context.Context) string {
	if t, ok := ctx.Value(tokenKey{}).(string); ok {
		return t
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn(ctx, "token read failed, sending request unauthenticated", "error", err)
		return ""
	}
	return token
}

// expireSession drops the stored session if it is still the one sent. A
// 401 for a token that was replaced in the meantime leaves the newer
// session alone.
func (c *HTTPClient) expireSession(ctx context.Context, endpoint, sent string) {
	sessionExpiredTotal.Inc()
	if sent == "" {
		return
	}
	// The purge must land even when the caller's context is already done.
	purged, err := c.tokens.PurgeToken(context.WithoutCancel(ctx), sent)
	switch {
	case err != nil:
		c.logger.Error(ctx, "purging expired session failed", "endpoint", endpoint, "error", err)
	case purged:
		c.logger.Info(ctx, "session expired, local credentials purged", "endpoint", endpoint)
	default:
		c.logger.Info(ctx, "stale session rejected, keeping newer credentials", "endpoint", endpoint)
	}
}

// Do encodes payload (nil for no body), performs the request and decodes the
// envelope data into T.
func Do[T any](ctx context.Context, r Requester, method, endpoint string, payload any) (*Envelope[T], error) {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		body = b
	}

	raw, err := r.Request(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	return decode[T](raw)
}

// Health probes GET /health under the health timeout. A probe that runs out
// of time fails with a NetworkError matching ErrTimeout.
func (c *HTTPClient) Health(ctx context.Context) (*Envelope[json.RawMessage], error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()
	return c.Request(ctx, http.MethodGet, "/health", nil)
}

// Logout notifies the backend. Local cleanup is the caller's job and must
// not depend on this call, so every failure is logged and reported as
// success.
func (c *HTTPClient) Logout(ctx context.Context) (*Envelope[json.RawMessage], error) {
	env, err := c.Request(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		c.logger.Warn(ctx, "remote logout failed, ignoring", "error", err)
		return &Envelope[json.RawMessage]{Status: StatusSuccess, Message: "Logged out"}, nil
	}
	if !env.OK() {
		c.logger.Warn(ctx, "remote logout rejected, ignoring", "message", env.Message)
		return &Envelope[json.RawMessage]{Status: StatusSuccess, Message: "Logged out"}, nil
	}
	return env, nil
}

// restyLogger forwards resty's printf-style logging to logging.Logger.
type restyLogger struct {
	l logging.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error(context.Background(), fmt.Sprintf(format, v...), "source", "resty")
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn(context.Background(), fmt.Sprintf(format, v...), "source", "resty")
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug(context.Background(), fmt.Sprintf(format, v...), "source", "resty")
}
