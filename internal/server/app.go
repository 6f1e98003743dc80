// Package server wires the reference backend together: Postgres with
// embedded migrations, the services, the HTTP API, and a background sweep
// of expired token revocations.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/config"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/httpapi"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/repomanager"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/services"
)

// purgeInterval is how often expired token revocations are deleted.
const purgeInterval = time.Hour

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	api         *httpapi.API
}

// NewApp connects to Postgres, migrates it and builds the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	cs := services.NewCatalogService(db, rm)
	as := services.NewAttemptService(db, rm)

	api := httpapi.New(us, cs, as, httpapi.RateLimit{PerMinute: c.AuthRateLimit, Burst: c.AuthRateBurst}, logger)

	return &App{config: c, logger: logger, db: db, userService: us, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.HTTPAddr, app.api.Handler(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) purgeRevokedTokens(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.userService.PurgeRevoked(ctx)
			if err != nil {
				app.logger.Error(ctx, "purging revoked tokens failed", "error", err)
				continue
			}
			app.logger.Debug(ctx, "purged revoked tokens", "count", n)
		}
	}
}

// Run serves until a signal arrives or the server fails, then closes the
// database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeRevokedTokens(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "closing database failed", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
