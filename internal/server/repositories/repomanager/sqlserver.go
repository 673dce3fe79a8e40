package repomanager

import (
	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/logins"
	_ "github.com/microsoft/go-mssqldb"
)

// SQLServerRepositoryManager vends repositories that EXEC the procedures
// through go-mssqldb.
type SQLServerRepositoryManager struct{}

// Logins returns a logins.Repository bound to the provided DBTX.
func (m *SQLServerRepositoryManager) Logins(db dbx.DBTX) logins.Repository {
	return logins.NewSQLServerRepository(db)
}

// Jobs returns a jobs.Repository bound to the provided DBTX.
func (m *SQLServerRepositoryManager) Jobs(db dbx.DBTX) jobs.Repository {
	return jobs.NewSQLServerRepository(db)
}

func NewSQLServerRepositoryManager() RepositoryManager {
	return &SQLServerRepositoryManager{}
}
