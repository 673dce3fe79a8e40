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

// SQLServerRepository calls the procedures through go-mssqldb. Output
// parameters are bound natively with sql.Out, so result sets a procedure
// emits on its own are ignored.
type SQLServerRepository struct {
	db dbx.DBTX
}

func NewSQLServerRepository(db dbx.DBTX) *SQLServerRepository {
	return &SQLServerRepository{db: db}
}

func (r *SQLServerRepository) exec(ctx context.Context, name string, params []procedure.Param) error {
	query, args := procedure.SQLServerExec(name, params)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLServerRepository) ValidateLogin(ctx context.Context, username, ipAddress string) (*models.LoginValidation, error) {
	var (
		password      []byte
		errorCode     sql.NullInt64
		loginAttempts sql.NullInt64
		email         sql.NullString
	)

	err := r.exec(ctx, ProcValidateLogin, []procedure.Param{
		{Name: "UserName", Value: username},
		{Name: "IPAddress", Value: ipAddress},
		{Name: "Password", Value: sql.Out{Dest: &password}},
		{Name: "ErrorCode", Value: sql.Out{Dest: &errorCode}},
		{Name: "LoginAttempts", Value: sql.Out{Dest: &loginAttempts}},
		{Name: "UserWorkEmail", Value: sql.Out{Dest: &email}},
	})
	if err != nil {
		return nil, err
	}

	return validationFrom(password, errorCode, loginAttempts, email)
}

func (r *SQLServerRepository) ApplyLoginRestrictions(ctx context.Context, username, ipAddress string) (int, error) {
	var code sql.NullInt64

	err := r.exec(ctx, ProcApplyLoginRestrictions, []procedure.Param{
		{Name: "UserName", Value: username},
		{Name: "IPAddress", Value: ipAddress},
		{Name: "ErrorCode", Value: sql.Out{Dest: &code}},
	})
	if err != nil {
		return 0, err
	}
	if !code.Valid {
		return 0, fmt.Errorf("db error: %s returned no error code", ProcApplyLoginRestrictions)
	}

	return int(code.Int64), nil
}

func (r *SQLServerRepository) ResolveUserID(ctx context.Context, username string) (int, error) {
	var id sql.NullInt64

	err := r.exec(ctx, ProcResolveUserID, []procedure.Param{
		{Name: "LoginName", Value: username},
		{Name: "UserId", Value: sql.Out{Dest: &id}},
	})
	if err != nil {
		return 0, err
	}
	if !id.Valid {
		return 0, common.ErrorNotFound
	}

	return int(id.Int64), nil
}

func (r *SQLServerRepository) RecordFailedAttempt(ctx context.Context, attempt models.FailedAttempt) error {
	return r.exec(ctx, ProcRecordFailedAttempt, failedAttemptParams(attempt))
}

func failedAttemptParams(a models.FailedAttempt) []procedure.Param {
	return []procedure.Param{
		{Name: "UserName", Value: a.Username},
		{Name: "IPAddress", Value: a.IPAddress},
		{Name: "Comments", Value: a.Comments},
		{Name: "AccessCode", Value: a.AccessCode},
	}
}

func validationFrom(password []byte, errorCode, loginAttempts sql.NullInt64, email sql.NullString) (*models.LoginValidation, error) {
	if !errorCode.Valid {
		return nil, errors.New("db error: " + ProcValidateLogin + " returned no error code")
	}

	return &models.LoginValidation{
		ErrorCode:       int(errorCode.Int64),
		EncodedPassword: password,
		LoginAttempts:   int(loginAttempts.Int64),
		UserWorkEmail:   email.String,
	}, nil
}
