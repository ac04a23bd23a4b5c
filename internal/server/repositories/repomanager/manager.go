package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/quizhub/internal/dbx"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/quizzes"
	"github.com/dmitrijs2005/quizhub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or an open
// transaction, so services can decide per call which handle to use.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Quizzes(db dbx.DBTX) quizzes.Repository
}
