package logins

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPostgres_ValidateLogin(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+password,\s*errorcode,\s*loginattempts,\s*userworkemail\s+FROM\s+sp_is_valid_login_name\(username\s*=>\s*\$1,\s*ipaddress\s*=>\s*\$2\)$`
	mock.ExpectQuery(q).
		WithArgs("jdoe", "10.0.0.7").
		WillReturnRows(sqlmock.NewRows([]string{"password", "errorcode", "loginattempts", "userworkemail"}).
			AddRow([]byte("klm"), int64(0), int64(1), "jdoe@example.com"))

	got, err := repo.ValidateLogin(context.Background(), "jdoe", "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, []byte("klm"), got.EncodedPassword)
	assert.Equal(t, 1, got.LoginAttempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ValidateLogin_DBError(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`sp_is_valid_login_name`).WillReturnError(errors.New("conn reset"))

	_, err := repo.ValidateLogin(context.Background(), "jdoe", "10.0.0.7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: conn reset")
}

func TestPostgres_ApplyLoginRestrictions(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT errorcode FROM sp_do_login_actions\(username => \$1, ipaddress => \$2\)$`).
		WithArgs("jdoe", "10.0.0.7").
		WillReturnRows(sqlmock.NewRows([]string{"errorcode"}).AddRow(int64(0)))

	code, err := repo.ApplyLoginRestrictions(context.Background(), "jdoe", "10.0.0.7")
	require.NoError(t, err)
	assert.Zero(t, code)
}

func TestPostgres_ResolveUserID_NoRows(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`sp_get_user_id`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"userid"}))

	_, err := repo.ResolveUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_ResolveUserID(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT userid FROM sp_get_user_id\(loginname => \$1\)$`).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"userid"}).AddRow(int64(42)))

	id, err := repo.ResolveUserID(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestPostgres_RecordFailedAttempt(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	q := `^SELECT \* FROM usp_login_failed_attempt\(username => \$1, ipaddress => \$2, comments => \$3, accesscode => \$4\)$`
	mock.ExpectExec(q).
		WithArgs("jdoe", "10.0.0.7", "failed login attempt", "no code").
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
