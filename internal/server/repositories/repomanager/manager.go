// Package repomanager vends the repository implementations for the
// configured database dialect.
package repomanager

import (
	"fmt"

	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/server/config"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/logins"
)

type RepositoryManager interface {
	Logins(db dbx.DBTX) logins.Repository
	Jobs(db dbx.DBTX) jobs.Repository
}

// New returns the manager for a database/sql driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case config.DriverSQLServer:
		return NewSQLServerRepositoryManager(), nil
	case config.DriverPgx:
		return NewPostgresRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
