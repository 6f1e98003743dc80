package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/client"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/config"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/credentials"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/models"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/services"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/session"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Session is the part of session.Manager the CLI uses.
type Session interface {
	Bootstrap(ctx context.Context) error
	State() session.State
	Login(ctx context.Context, email, password string) (session.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (session.AuthResult, error)
	Logout(ctx context.Context)
	Refresh(ctx context.Context) error
	Wait()
}

// Catalog is the part of services.CatalogService the CLI uses.
type Catalog interface {
	Topics(ctx context.Context) (services.Result[[]models.Topic], error)
	Topic(ctx context.Context, slug string) (services.Result[models.Topic], error)
	TopicQuestions(ctx context.Context, slug string) (services.Result[[]models.Question], error)
	SimulationTopics(ctx context.Context) (services.Result[[]models.Topic], error)
	SimulationQuestion(ctx context.Context, slug string) (models.SimulationQuestion, error)
	SubmitAnswer(ctx context.Context, questionID int64, answer string, timeTaken time.Duration) (models.SubmitResult, error)
	Achievements(ctx context.Context) (services.Result[[]models.Achievement], error)
	Challenges(ctx context.Context) (services.Result[[]models.Challenge], error)
	DailyChallenge(ctx context.Context) (services.Result[models.Challenge], error)
	UserAchievements(ctx context.Context) ([]models.Achievement, error)
	UserProgress(ctx context.Context) ([]models.TopicProgress, error)
	UserAttempts(ctx context.Context) ([]models.Attempt, error)
	Forget(ctx context.Context) error
}

// Connectivity is the part of services.ConnectivityWatcher the CLI uses.
type Connectivity interface {
	Online() bool
	Check(ctx context.Context) bool
	Run(ctx context.Context) error
}

type App struct {
	session Session
	catalog Catalog
	watcher Connectivity
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu       sync.Mutex
	mode     Mode
	asked    map[int64]time.Time
	shutdown func() error
}

// NewApp opens the local database at cfg.DatabasePath and wires the client
// stack. Close releases it.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	repos := client.NewRepositories(db)
	store := credentials.NewStore(repos.Metadata, logger)

	api, err := client.New(cfg.ServerBaseURL, store,
		client.WithLogger(logger),
		client.WithHTTPTimeout(cfg.HTTPTimeout),
		client.WithHealthTimeout(cfg.HealthTimeout),
		client.WithDebug(cfg.Debug),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	alive, cancel := context.WithCancel(context.Background())
	sm := session.NewManager(alive, api, store,
		session.WithLogger(logger),
		session.WithCooldown(cfg.BootstrapCooldown),
	)

	a := newApp(sm, services.NewCatalogService(api, repos.Cache, logger), nil, logger, os.Stdin, os.Stdout)
	a.watcher = services.NewConnectivityWatcher(api, cfg.OnlineCheckInterval, a.setOnline, logger)
	a.shutdown = func() error {
		cancel()
		sm.Wait()
		return db.Close()
	}
	return a, nil
}

func newApp(s Session, c Catalog, w Connectivity, logger logging.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		session: s,
		catalog: c,
		watcher: w,
		logger:  logger.With("component", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
		asked:   make(map[int64]time.Time),
	}
}

func (a *App) Close() error {
	if a.shutdown == nil {
		return nil
	}
	return a.shutdown()
}

// Start restores the previous session and probes the server once.
func (a *App) Start(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Check(ctx)
	}
	if err := a.session.Bootstrap(ctx); err != nil {
		a.logger.Debug(ctx, "bootstrap failed", "error", err)
		a.println(describeError(err))
	}
}

// StartOnlineStatusWatcher keeps the prompt's online/offline marker current
// until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context) {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Run(ctx); err != nil && ctx.Err() == nil {
		a.logger.Warn(ctx, "connectivity watcher stopped", "error", err)
	}
}

func (a *App) setOnline(online bool) {
	mode := ModeOffline
	if online {
		mode = ModeOnline
	}
	a.setMode(mode)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated()
}

// getStatus renders the prompt decoration, e.g. "(Alice online)".
func (a *App) getStatus() string {
	s := ""
	if u := a.session.State().User; u != nil {
		s = u.Name + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
