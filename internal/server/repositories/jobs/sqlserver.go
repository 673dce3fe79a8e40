package jobs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/procedure"
)

type SQLServerRepository struct {
	db dbx.DBTX
}

func NewSQLServerRepository(db dbx.DBTX) *SQLServerRepository {
	return &SQLServerRepository{db: db}
}

func (r *SQLServerRepository) Search(ctx context.Context, params models.JobSearchParams) ([]models.Row, error) {
	query, args := procedure.SQLServerExec(ProcSearch, searchParams(params))
	return queryRows(ctx, r.db, query, args)
}

func (r *SQLServerRepository) GetByID(ctx context.Context, id int) ([]models.Row, error) {
	query, args := procedure.SQLServerExec(ProcGetByID, []procedure.Param{{Name: "ID", Value: int64(id)}})
	return queryRows(ctx, r.db, query, args)
}

func queryRows(ctx context.Context, db dbx.DBTX, query string, args []any) ([]models.Row, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out, err := procedure.ScanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
