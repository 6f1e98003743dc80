package repomanager

import (
	"context"
	"database/sql"

	"github.com/Sinduaditya/fisikaap-sub000/internal/dbx"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/attempts"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/catalog"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/gamification"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/revokedtokens"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
	Catalog(db dbx.DBTX) catalog.Repository
	Attempts(db dbx.DBTX) attempts.Repository
	Gamification(db dbx.DBTX) gamification.Repository
}
