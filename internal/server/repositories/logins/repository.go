// Package logins wraps the stored procedures that drive the login protocol.
package logins

import (
	"context"

	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
)

// Procedure names as installed in the reporting database.
const (
	ProcValidateLogin          = "SP_IS_VALID_LOGIN_NAME"
	ProcApplyLoginRestrictions = "SP_DO_LOGIN_ACTIONS"
	ProcResolveUserID          = "SP_GET_USER_ID"
	ProcRecordFailedAttempt    = "usp_Login_Failed_Attempt"
)

// Repository performs one stored procedure round trip per method.
type Repository interface {
	ValidateLogin(ctx context.Context, username, ipAddress string) (*models.LoginValidation, error)
	ApplyLoginRestrictions(ctx context.Context, username, ipAddress string) (int, error)
	ResolveUserID(ctx context.Context, username string) (int, error)
	RecordFailedAttempt(ctx context.Context, attempt models.FailedAttempt) error
}
