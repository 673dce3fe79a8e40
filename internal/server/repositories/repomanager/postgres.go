package repomanager

import (
	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/logins"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends repositories for the PostgreSQL ports of
// the procedures, reached through the pgx stdlib driver.
type PostgresRepositoryManager struct{}

// Logins returns a logins.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Logins(db dbx.DBTX) logins.Repository {
	return logins.NewPostgresRepository(db)
}

// Jobs returns a jobs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Jobs(db dbx.DBTX) jobs.Repository {
	return jobs.NewPostgresRepository(db)
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
