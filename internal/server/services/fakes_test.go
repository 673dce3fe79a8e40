package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
	"github.com/dmitrijs2005/escc-report-api/internal/server/config"
	"github.com/dmitrijs2005/escc-report-api/internal/server/metrics"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/logins"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeLoginsRepo struct {
	calls []string

	validation    *models.LoginValidation
	validationErr error

	restrictionCode int
	restrictionErr  error

	userID    int
	userIDErr error

	recordErr error
	recorded  []models.FailedAttempt

	// deadlines seen by each call
	deadlines []bool
	cancelled []bool
}

func (f *fakeLoginsRepo) seen(ctx context.Context, name string) {
	f.calls = append(f.calls, name)
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	f.cancelled = append(f.cancelled, ctx.Err() != nil)
}

func (f *fakeLoginsRepo) ValidateLogin(ctx context.Context, username, ipAddress string) (*models.LoginValidation, error) {
	f.seen(ctx, logins.ProcValidateLogin)
	if f.validationErr != nil {
		return nil, f.validationErr
	}
	return f.validation, nil
}

func (f *fakeLoginsRepo) ApplyLoginRestrictions(ctx context.Context, username, ipAddress string) (int, error) {
	f.seen(ctx, logins.ProcApplyLoginRestrictions)
	return f.restrictionCode, f.restrictionErr
}

func (f *fakeLoginsRepo) ResolveUserID(ctx context.Context, username string) (int, error) {
	f.seen(ctx, logins.ProcResolveUserID)
	return f.userID, f.userIDErr
}

func (f *fakeLoginsRepo) RecordFailedAttempt(ctx context.Context, attempt models.FailedAttempt) error {
	f.seen(ctx, logins.ProcRecordFailedAttempt)
	f.recorded = append(f.recorded, attempt)
	return f.recordErr
}

type fakeJobsRepo struct {
	searchIn  []models.JobSearchParams
	searchOut []models.Row
	searchErr error

	getIn  []int
	getOut []models.Row
	getErr error
}

func (f *fakeJobsRepo) Search(ctx context.Context, params models.JobSearchParams) ([]models.Row, error) {
	f.searchIn = append(f.searchIn, params)
	return f.searchOut, f.searchErr
}

func (f *fakeJobsRepo) GetByID(ctx context.Context, id int) ([]models.Row, error) {
	f.getIn = append(f.getIn, id)
	return f.getOut, f.getErr
}

type fakeRepoManager struct {
	l *fakeLoginsRepo
	j *fakeJobsRepo
}

func (m *fakeRepoManager) Logins(db dbx.DBTX) logins.Repository { return m.l }
func (m *fakeRepoManager) Jobs(db dbx.DBTX) jobs.Repository     { return m.j }

func testConfig() *config.Config {
	return &config.Config{
		StoreCallTimeout:             5 * time.Second,
		AccessTokenSecret:            "access",
		RefreshTokenSecret:           "refresh",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 7 * 24 * time.Hour,
		DefaultPageLimit:             50,
	}
}

func newUserService(t *testing.T, l *fakeLoginsRepo) (*UserService, *metrics.Metrics) {
	t.Helper()
	mt := metrics.New()
	return NewUserService(nil, &fakeRepoManager{l: l}, testConfig(), mt, logging.Nop()), mt
}

func newJobService(t *testing.T, j *fakeJobsRepo) *JobService {
	t.Helper()
	return NewJobService(nil, &fakeRepoManager{j: j}, testConfig(), metrics.New(), logging.Nop())
}
