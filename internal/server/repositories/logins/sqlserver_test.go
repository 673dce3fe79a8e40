package logins

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLServerRepoWithMock(t *testing.T) (*SQLServerRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLServerRepository(db), mock, db
}

// outValue matches a sql.Out argument and stores value into its
// destination, standing in for the driver filling an OUTPUT parameter.
type outValue struct {
	value any
}

func (o outValue) Match(v driver.Value) bool {
	out, ok := v.(sql.Out)
	if !ok {
		return false
	}

	switch dest := out.Dest.(type) {
	case *[]byte:
		b, _ := o.value.([]byte)
		*dest = b
		return true
	case *sql.NullInt64:
		return dest.Scan(o.value) == nil
	case *sql.NullString:
		return dest.Scan(o.value) == nil
	}
	return false
}

const validateLoginQuery = `^EXEC SP_IS_VALID_LOGIN_NAME @UserName = @UserName, @IPAddress = @IPAddress, ` +
	`@Password = @Password OUTPUT, @ErrorCode = @ErrorCode OUTPUT, ` +
	`@LoginAttempts = @LoginAttempts OUTPUT, @UserWorkEmail = @UserWorkEmail OUTPUT$`

func expectValidateLogin(mock sqlmock.Sqlmock, password, code, attempts, email any) *sqlmock.ExpectedExec {
	return mock.ExpectExec(validateLoginQuery).
		WithArgs(
			sql.Named("UserName", "jdoe"),
			sql.Named("IPAddress", "10.0.0.7"),
			outValue{password},
			outValue{code},
			outValue{attempts},
			outValue{email},
		)
}

func TestSQLServer_ValidateLogin_Success(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	expectValidateLogin(mock, []byte("klm"), int64(0), int64(2), "jdoe@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, err := repo.ValidateLogin(context.Background(), "jdoe", "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, &models.LoginValidation{
		ErrorCode:       0,
		EncodedPassword: []byte("klm"),
		LoginAttempts:   2,
		UserWorkEmail:   "jdoe@example.com",
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLServer_ValidateLogin_NullOutputs(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	expectValidateLogin(mock, nil, int64(2), nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, err := repo.ValidateLogin(context.Background(), "jdoe", "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ErrorCode)
	assert.Nil(t, got.EncodedPassword)
	assert.Zero(t, got.LoginAttempts)
	assert.Empty(t, got.UserWorkEmail)
}

func TestSQLServer_ValidateLogin_MissingErrorCode(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	expectValidateLogin(mock, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.ValidateLogin(context.Background(), "jdoe", "10.0.0.7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no error code")
}

func TestSQLServer_ValidateLogin_DBError(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`EXEC SP_IS_VALID_LOGIN_NAME`).WillReturnError(errors.New("db down"))

	_, err := repo.ValidateLogin(context.Background(), "jdoe", "10.0.0.7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestSQLServer_ApplyLoginRestrictions(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	q := `^EXEC SP_DO_LOGIN_ACTIONS @UserName = @UserName, @IPAddress = @IPAddress, @ErrorCode = @ErrorCode OUTPUT$`
	mock.ExpectExec(q).
		WithArgs(sql.Named("UserName", "jdoe"), sql.Named("IPAddress", "10.0.0.7"), outValue{int64(5)}).
		WillReturnResult(sqlmock.NewResult(0, 0))

	code, err := repo.ApplyLoginRestrictions(context.Background(), "jdoe", "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, 5, code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLServer_ApplyLoginRestrictions_NullCode(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`EXEC SP_DO_LOGIN_ACTIONS`).
		WithArgs(sql.Named("UserName", "jdoe"), sql.Named("IPAddress", "10.0.0.7"), outValue{nil}).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.ApplyLoginRestrictions(context.Background(), "jdoe", "10.0.0.7")
	require.Error(t, err)
}

func TestSQLServer_ResolveUserID(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	q := `^EXEC SP_GET_USER_ID @LoginName = @LoginName, @UserId = @UserId OUTPUT$`
	mock.ExpectExec(q).
		WithArgs(sql.Named("LoginName", "jdoe"), outValue{int64(42)}).
		WillReturnResult(sqlmock.NewResult(0, 0))

	id, err := repo.ResolveUserID(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestSQLServer_ResolveUserID_NotFound(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`EXEC SP_GET_USER_ID`).
		WithArgs(sql.Named("LoginName", "ghost"), outValue{nil}).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.ResolveUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLServer_RecordFailedAttempt(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	q := `^EXEC usp_Login_Failed_Attempt @UserName = @UserName, @IPAddress = @IPAddress, @Comments = @Comments, @AccessCode = @AccessCode$`
	mock.ExpectExec(q).
		WithArgs(
			sql.Named("UserName", "jdoe"),
			sql.Named("IPAddress", "10.0.0.7"),
			sql.Named("Comments", "failed login attempt"),
			sql.Named("AccessCode", "no code"),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordFailedAttempt(context.Background(), models.FailedAttempt{
		Username:   "jdoe",
		IPAddress:  "10.0.0.7",
		Comments:   "failed login attempt",
		AccessCode: "no code",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLServer_RecordFailedAttempt_DBError(t *testing.T) {
	repo, mock, db := newSQLServerRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`EXEC usp_Login_Failed_Attempt`).WillReturnError(errors.New("deadlock"))

	err := repo.RecordFailedAttempt(context.Background(), models.FailedAttempt{Username: "jdoe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock")
}
