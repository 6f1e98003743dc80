package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/services"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/session"
)

type fakeSession struct {
	mu    sync.Mutex
	state session.State

	loginRes  session.AuthResult
	loginErr  error
	regRes    session.AuthResult
	regErr    error
	regReq    models.RegisterRequest
	refreshFn func() error

	gotEmail, gotPassword string
	logouts               int
	bootstraps            int
}

func (f *fakeSession) Bootstrap(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bootstraps++
	f.state.Initialized = true
	return nil
}

func (f *fakeSession) State() session.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) Login(_ context.Context, email, password string) (session.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotEmail, f.gotPassword = email, password
	if f.loginRes.OK {
		u := models.User{ID: 1, Name: "Alice", Email: email}
		f.state = session.State{User: &u, Initialized: true}
	}
	return f.loginRes, f.loginErr
}

func (f *fakeSession) Register(_ context.Context, req models.RegisterRequest) (session.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regReq = req
	if f.regRes.OK {
		u := models.User{ID: 2, Name: req.Name, Email: req.Email}
		f.state = session.State{User: &u, Initialized: true}
	}
	return f.regRes, f.regErr
}

func (f *fakeSession) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.state = session.State{Initialized: true}
}

func (f *fakeSession) Refresh(context.Context) error {
	if f.refreshFn != nil {
		return f.refreshFn()
	}
	return nil
}

func (f *fakeSession) Wait() {}

func (f *fakeSession) signIn(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := models.User{ID: 1, Name: name, Email: strings.ToLower(name) + "@example.com", Level: 2, TotalXP: 650}
	f.state = session.State{User: &u, Initialized: true}
}

type fakeCatalog struct {
	topics    services.Result[[]models.Topic]
	topicsErr error

	simQuestion models.SimulationQuestion
	submitID    int64
	submitAns   string
	submitTook  time.Duration
	submitRes   models.SubmitResult

	progress    []models.TopicProgress
	progressErr error

	forgets int
}

func (f *fakeCatalog) Topics(context.Context) (services.Result[[]models.Topic], error) {
	return f.topics, f.topicsErr
}

func (f *fakeCatalog) Topic(_ context.Context, slug string) (services.Result[models.Topic], error) {
	return services.Result[models.Topic]{Data: models.Topic{Slug: slug, Title: "Kinematics"}}, nil
}

func (f *fakeCatalog) TopicQuestions(context.Context, string) (services.Result[[]models.Question], error) {
	return services.Result[[]models.Question]{}, nil
}

func (f *fakeCatalog) SimulationTopics(context.Context) (services.Result[[]models.Topic], error) {
	return f.topics, f.topicsErr
}

func (f *fakeCatalog) SimulationQuestion(context.Context, string) (models.SimulationQuestion, error) {
	return f.simQuestion, nil
}

func (f *fakeCatalog) SubmitAnswer(_ context.Context, id int64, answer string, took time.Duration) (models.SubmitResult, error) {
	f.submitID, f.submitAns, f.submitTook = id, answer, took
	return f.submitRes, nil
}

func (f *fakeCatalog) Achievements(context.Context) (services.Result[[]models.Achievement], error) {
	return services.Result[[]models.Achievement]{}, nil
}

func (f *fakeCatalog) Challenges(context.Context) (services.Result[[]models.Challenge], error) {
	return services.Result[[]models.Challenge]{}, nil
}

func (f *fakeCatalog) DailyChallenge(context.Context) (services.Result[models.Challenge], error) {
	return services.Result[models.Challenge]{Data: models.Challenge{Title: "Drop test", XPReward: 50}}, nil
}

func (f *fakeCatalog) UserAchievements(context.Context) ([]models.Achievement, error) {
	return nil, nil
}

func (f *fakeCatalog) UserProgress(context.Context) ([]models.TopicProgress, error) {
	return f.progress, f.progressErr
}

func (f *fakeCatalog) UserAttempts(context.Context) ([]models.Attempt, error) {
	return nil, nil
}

func (f *fakeCatalog) Forget(context.Context) error {
	f.forgets++
	return nil
}

type fakeWatcher struct {
	online bool
	checks int
}

func (f *fakeWatcher) Online() bool { return f.online }

func (f *fakeWatcher) Check(context.Context) bool {
	f.checks++
	return f.online
}

func (f *fakeWatcher) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func newTestApp(t *testing.T, input string) (*App, *fakeSession, *fakeCatalog, *bytes.Buffer) {
	t.Helper()
	s := &fakeSession{}
	c := &fakeCatalog{}
	out := &bytes.Buffer{}
	a := newApp(s, c, &fakeWatcher{online: true}, nil, strings.NewReader(input), out)
	return a, s, c, out
}

func stubPassword(t *testing.T, pw ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) {
		p := pw[i%len(pw)]
		i++
		return []byte(p), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
