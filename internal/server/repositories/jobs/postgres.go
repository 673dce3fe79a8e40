package jobs

import (
	"context"

	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/procedure"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Search(ctx context.Context, params models.JobSearchParams) ([]models.Row, error) {
	query, args := procedure.PostgresSelect(ProcSearch, searchParams(params))
	return queryRows(ctx, r.db, query, args)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) ([]models.Row, error) {
	query, args := procedure.PostgresSelect(ProcGetByID, []procedure.Param{{Name: "ID", Value: int64(id)}})
	return queryRows(ctx, r.db, query, args)
}
