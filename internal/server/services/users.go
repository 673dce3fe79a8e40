// Package services contains server-side business logic. This file implements
// UserService, which runs the stored-procedure login protocol and issues and
// refreshes signed session tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/legacycred"
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
	"github.com/dmitrijs2005/escc-report-api/internal/server/auth"
	"github.com/dmitrijs2005/escc-report-api/internal/server/config"
	"github.com/dmitrijs2005/escc-report-api/internal/server/metrics"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/logins"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/repomanager"
)

// Audit values written with every failed password check.
const (
	failedAttemptComment    = "failed login attempt"
	failedAttemptAccessCode = "no code"
)

// Session is the outcome of a successful login or refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

// UserService provides authentication-related operations:
//   - Login: run the procedure chain and mint a token pair
//   - Refresh: exchange a refresh token for a new pair
//   - Authenticate: verify an access token
type UserService struct {
	db                           dbx.DBTX
	repomanager                  repomanager.RepositoryManager
	store                        storeCaller
	metrics                      *metrics.Metrics
	log                          logging.Logger
	accessTokenSecret            []byte
	refreshTokenSecret           []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *config.Config, mt *metrics.Metrics, log logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		store:                        storeCaller{timeout: cfg.StoreCallTimeout, metrics: mt},
		metrics:                      mt,
		log:                          log,
		accessTokenSecret:            []byte(cfg.AccessTokenSecret),
		refreshTokenSecret:           []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Login authenticates username/password for a caller at callerIP.
//
// The steps run strictly in order and each failure ends the attempt:
// validate-login, password check, login restrictions, user id lookup and
// finally token issuance. Rejections are *LoginError values; store failures
// wrap common.ErrorInternal.
func (s *UserService) Login(ctx context.Context, username, password, callerIP string) (*Session, error) {
	if username == "" || password == "" {
		s.metrics.LoginAttempt(metrics.ResultRejected)
		return nil, validationErrorf("Username and password are required.")
	}

	ctx = logging.ContextWith(ctx, "username", username, "ip", callerIP)
	repo := s.repomanager.Logins(s.db)

	validation, err := call(ctx, s.store, logins.ProcValidateLogin, func(ctx context.Context) (*models.LoginValidation, error) {
		return repo.ValidateLogin(ctx, username, callerIP)
	})
	if err != nil {
		return nil, s.loginInternal(ctx, "validate login", err)
	}

	if validation.ErrorCode != 0 {
		lerr := validationError(validation)
		s.log.Info(ctx, "login rejected by validation", "errorCode", validation.ErrorCode)
		s.metrics.LoginAttempt(resultFor(lerr))
		return nil, lerr
	}

	if !legacycred.Matches(validation.EncodedPassword, password) {
		s.recordFailedAttempt(ctx, repo, username, callerIP)
		s.metrics.LoginAttempt(metrics.ResultMismatch)
		return nil, &LoginError{
			Kind:          ErrCredentialMismatch,
			Message:       "Invalid username or password",
			LoginAttempts: validation.LoginAttempts,
			ErrorCode:     CodeCredentialMismatch,
		}
	}

	code, err := call(ctx, s.store, logins.ProcApplyLoginRestrictions, func(ctx context.Context) (int, error) {
		return repo.ApplyLoginRestrictions(ctx, username, callerIP)
	})
	if err != nil {
		return nil, s.loginInternal(ctx, "apply login restrictions", err)
	}
	if code != 0 {
		s.log.Warn(ctx, "login denied by restrictions", "errorCode", code)
		s.metrics.LoginAttempt(metrics.ResultDenied)
		return nil, &LoginError{
			Kind:          ErrAccessDenied,
			Message:       "Access denied - IP blocked or login restrictions",
			LoginAttempts: validation.LoginAttempts,
			ErrorCode:     code,
		}
	}

	userID, err := call(ctx, s.store, logins.ProcResolveUserID, func(ctx context.Context) (int, error) {
		return repo.ResolveUserID(ctx, username)
	})
	if err != nil {
		return nil, s.loginInternal(ctx, "resolve user id", err)
	}

	claims := auth.Claims{
		UserID:          userID,
		Username:        username,
		UserWorkEmail:   validation.UserWorkEmail,
		SourceIPAddress: callerIP,
	}

	session, err := s.issue(claims)
	if err != nil {
		return nil, s.loginInternal(ctx, "issue tokens", err)
	}
	session.User.LoginAttempts = validation.LoginAttempts

	s.log.Info(ctx, "login succeeded", "userId", userID)
	s.metrics.LoginAttempt(metrics.ResultSuccess)

	return session, nil
}

// Refresh exchanges a valid refresh token for a new token pair carrying the
// same identity claims. No store call is made.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		s.metrics.TokenRefresh(metrics.ResultRejected)
		return nil, validationErrorf("Refresh token is required.")
	}

	claims, err := auth.ParseToken(refreshToken, s.refreshTokenSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			s.metrics.TokenRefresh(metrics.ResultExpired)
		} else {
			s.metrics.TokenRefresh(metrics.ResultInvalid)
		}
		s.log.Info(ctx, "refresh token rejected", "error", err)
		return nil, err
	}

	session, err := s.issue(claims.Identity())
	if err != nil {
		s.metrics.TokenRefresh(metrics.ResultError)
		return nil, s.internal(ctx, "issue tokens", err)
	}

	s.metrics.TokenRefresh(metrics.ResultSuccess)
	return session, nil
}

// Authenticate verifies an access token and returns its claims.
func (s *UserService) Authenticate(accessToken string) (*auth.Claims, error) {
	return auth.ParseToken(accessToken, s.accessTokenSecret)
}

func (s *UserService) issue(claims auth.Claims) (*Session, error) {
	accessToken, err := auth.GenerateToken(claims, s.accessTokenSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	refreshToken, err := auth.GenerateToken(claims, s.refreshTokenSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: models.User{
			UserID:        claims.UserID,
			Username:      claims.Username,
			UserWorkEmail: claims.UserWorkEmail,
		},
	}, nil
}

// recordFailedAttempt writes the audit entry. Its failure does not change
// the outcome of the login.
func (s *UserService) recordFailedAttempt(ctx context.Context, repo logins.Repository, username, callerIP string) {
	attempt := models.FailedAttempt{
		Username:   username,
		IPAddress:  callerIP,
		Comments:   failedAttemptComment,
		AccessCode: failedAttemptAccessCode,
	}

	_, err := call(ctx, s.store, logins.ProcRecordFailedAttempt, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, repo.RecordFailedAttempt(ctx, attempt)
	})
	if err != nil {
		s.log.Error(ctx, "recording failed login attempt", "error", err)
	}
}

func (s *UserService) loginInternal(ctx context.Context, step string, err error) error {
	s.metrics.LoginAttempt(metrics.ResultError)
	return s.internal(ctx, step, err)
}

func (s *UserService) internal(ctx context.Context, step string, err error) error {
	s.log.Error(ctx, "session failure", "step", step, "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, step, err)
}

func validationError(v *models.LoginValidation) *LoginError {
	e := &LoginError{
		Kind:          ErrAccountRestricted,
		LoginAttempts: v.LoginAttempts,
		ErrorCode:     v.ErrorCode,
	}

	switch v.ErrorCode {
	case 1:
		e.Kind = ErrCredentialMismatch
		e.Message = "Invalid username or password"
	case 2:
		e.Message = "Account is disabled"
	case 3:
		e.Message = "Too many login attempts"
	default:
		e.Message = fmt.Sprintf("Login error: %d", v.ErrorCode)
	}

	return e
}

func resultFor(e *LoginError) string {
	if errors.Is(e, ErrCredentialMismatch) {
		return metrics.ResultMismatch
	}
	return metrics.ResultRestricted
}
