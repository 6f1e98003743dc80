package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Sinduaditya/fisikaap-sub000/internal/client/migrations"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/repositories/cache"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/repositories/metadata"
	"github.com/Sinduaditya/fisikaap-sub000/internal/filex"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Repositories groups the local stores backed by the client database.
type Repositories struct {
	Metadata metadata.Repository
	Cache    cache.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Cache:    cache.NewSQLiteRepository(db),
	}
}

// RunMigrations applies the embedded migrations. goose's progress lines go
// to logger at debug level instead of the terminal.
func RunMigrations(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Nop()
	}
	goose.SetLogger(gooseLogger{l: logger})
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite file at path and
// migrates it. The pool is limited to one connection: SQLite serialises
// writers anyway and a single connection keeps transactions simple.
func InitDatabase(ctx context.Context, path string, logger logging.Logger) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// gooseLogger forwards goose's printf-style output to logging.Logger.
type gooseLogger struct {
	l logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "goose")
}
