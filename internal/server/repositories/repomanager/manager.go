package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hrconsole/internal/dbx"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/employees"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/openings"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/hrconsole/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a database handle or a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Openings(db dbx.DBTX) openings.Repository
	Employees(db dbx.DBTX) employees.Repository
	Candidates(db dbx.DBTX) candidates.Repository
}
