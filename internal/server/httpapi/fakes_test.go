package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/common"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/auth"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/services"
)

const goodToken = "good-token"

var alice = &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", Level: 2, TotalXP: 650}

type fakeUsers struct {
	tokens    map[string]*auth.Claims
	authErr   error
	regErr    error
	regIn     services.RegisterInput
	loginErr  error
	profErr   error
	logoutErr error
	loggedOut []string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{tokens: map[string]*auth.Claims{goodToken: {UserID: alice.ID}}}
}

func (f *fakeUsers) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	c, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrInvalidToken
	}
	return c, nil
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*services.Session, error) {
	f.regIn = in
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &services.Session{User: alice, Token: "new-token"}, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*services.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.Session{User: alice, Token: "login-token"}, nil
}

func (f *fakeUsers) Logout(_ context.Context, claims *auth.Claims) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	for tok, c := range f.tokens {
		if c == claims {
			f.loggedOut = append(f.loggedOut, tok)
			delete(f.tokens, tok)
		}
	}
	return nil
}

func (f *fakeUsers) Profile(context.Context, int64) (*models.User, error) {
	if f.profErr != nil {
		return nil, f.profErr
	}
	return alice, nil
}

type fakeCatalog struct {
	topics   []models.Topic
	err      error
	panicMsg string
	simUser  int64
}

func (f *fakeCatalog) Topics(context.Context) ([]models.Topic, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.topics, f.err
}

func (f *fakeCatalog) Topic(_ context.Context, slug string) (*models.Topic, error) {
	for _, t := range f.topics {
		if t.Slug == slug {
			c := t
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCatalog) TopicQuestions(context.Context, string) ([]models.Question, error) {
	return nil, f.err
}

func (f *fakeCatalog) SimulationTopics(context.Context) ([]models.Topic, error) {
	return f.topics, f.err
}

func (f *fakeCatalog) SimulationQuestion(_ context.Context, slug string, userID int64) (*models.SimulationQuestion, error) {
	f.simUser = userID
	return &models.SimulationQuestion{Question: models.Question{ID: 11, Text: "drop"}, TopicSlug: slug, Unit: "m"}, nil
}

func (f *fakeCatalog) Achievements(context.Context) ([]models.Achievement, error) { return nil, f.err }

func (f *fakeCatalog) Challenges(context.Context) ([]models.Challenge, error) { return nil, f.err }

func (f *fakeCatalog) DailyChallenge(context.Context) (*models.Challenge, error) {
	return &models.Challenge{ID: 3, Title: "Daily practice", Target: 3, ActiveOn: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}, nil
}

type fakeAttempts struct {
	submitIn  services.SubmitInput
	submitRes *models.SubmitResult
	submitErr error
}

func (f *fakeAttempts) Submit(_ context.Context, in services.SubmitInput) (*models.SubmitResult, error) {
	f.submitIn = in
	return f.submitRes, f.submitErr
}

func (f *fakeAttempts) UserAttempts(context.Context, int64) ([]models.Attempt, error) {
	return []models.Attempt{{ID: "01J", QuestionID: 11, IsCorrect: true, Score: 100}}, nil
}

func (f *fakeAttempts) UserProgress(context.Context, int64) ([]models.TopicProgress, error) {
	return nil, nil
}

func (f *fakeAttempts) UserAchievements(context.Context, int64) ([]models.Achievement, error) {
	return []models.Achievement{{ID: 1, Code: "first_correct", Unlocked: true}}, nil
}

type fixture struct {
	handler  http.Handler
	users    *fakeUsers
	catalog  *fakeCatalog
	attempts *fakeAttempts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    newFakeUsers(),
		catalog:  &fakeCatalog{topics: []models.Topic{{ID: 1, Slug: "kinematics", Title: "Kinematics", HasSimulation: true}}},
		attempts: &fakeAttempts{},
	}
	api := New(f.users, f.catalog, f.attempts, RateLimit{PerMinute: 600, Burst: 100}, logging.Nop())
	f.handler = api.Handler()
	return f
}

// do sends a request with an optional JSON body and bearer token.
func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}
