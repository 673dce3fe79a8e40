package logins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/procedure"
)

// PostgresRepository calls the procedures ported to PostgreSQL functions.
// Each function returns its output parameters as one row.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ValidateLogin(ctx context.Context, username, ipAddress string) (*models.LoginValidation, error) {
	query :=
		`SELECT password, errorcode, loginattempts, userworkemail
		 FROM sp_is_valid_login_name(username => $1, ipaddress => $2)`

	var (
		password      []byte
		errorCode     sql.NullInt64
		loginAttempts sql.NullInt64
		email         sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, username, ipAddress).
		Scan(&password, &errorCode, &loginAttempts, &email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return validationFrom(password, errorCode, loginAttempts, email)
}

func (r *PostgresRepository) ApplyLoginRestrictions(ctx context.Context, username, ipAddress string) (int, error) {
	query := `SELECT errorcode FROM sp_do_login_actions(username => $1, ipaddress => $2)`

	var code sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, username, ipAddress).Scan(&code); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	if !code.Valid {
		return 0, fmt.Errorf("db error: %s returned no error code", ProcApplyLoginRestrictions)
	}

	return int(code.Int64), nil
}

func (r *PostgresRepository) ResolveUserID(ctx context.Context, username string) (int, error) {
	query := `SELECT userid FROM sp_get_user_id(loginname => $1)`

	var id sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, username).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	if !id.Valid {
		return 0, common.ErrorNotFound
	}

	return int(id.Int64), nil
}

func (r *PostgresRepository) RecordFailedAttempt(ctx context.Context, attempt models.FailedAttempt) error {
	query, args := procedure.PostgresSelect(ProcRecordFailedAttempt, failedAttemptParams(attempt))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
