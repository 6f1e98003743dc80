package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/attempts"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/catalog"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/gamification"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/revokedtokens"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	var _ RepositoryManager = NewPostgresRepositoryManager()
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	if _, ok := m.Users(db).(*users.PostgresRepository); !ok {
		t.Fatal("Users() is not a postgres repository")
	}
	if _, ok := m.RevokedTokens(db).(*revokedtokens.PostgresRepository); !ok {
		t.Fatal("RevokedTokens() is not a postgres repository")
	}
	if _, ok := m.Catalog(db).(*catalog.PostgresRepository); !ok {
		t.Fatal("Catalog() is not a postgres repository")
	}
	if _, ok := m.Attempts(db).(*attempts.PostgresRepository); !ok {
		t.Fatal("Attempts() is not a postgres repository")
	}
	if _, ok := m.Gamification(db).(*gamification.PostgresRepository); !ok {
		t.Fatal("Gamification() is not a postgres repository")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpenPostgres_BadDSN(t *testing.T) {
	if _, err := OpenPostgres(context.Background(), "postgres://u:p@127.0.0.1:1/db?connect_timeout=1"); err == nil {
		t.Fatal("expected connection error")
	}
}
