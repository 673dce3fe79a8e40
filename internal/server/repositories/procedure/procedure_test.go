package procedure

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLServerExec(t *testing.T) {
	q, args := SQLServerExec("uspS_JobReport", []Param{
		{Name: "StrJobId", Value: "J-1"},
		{Name: "StrSortBy", Value: nil},
	})

	assert.Equal(t, "EXEC uspS_JobReport @StrJobId = @StrJobId, @StrSortBy = @StrSortBy", q)
	assert.Equal(t, []any{sql.Named("StrJobId", "J-1"), sql.Named("StrSortBy", nil)}, args)
}

func TestSQLServerExec_OutputParams(t *testing.T) {
	var code sql.NullInt64
	q, args := SQLServerExec("SP_DO_LOGIN_ACTIONS", []Param{
		{Name: "UserName", Value: "jdoe"},
		{Name: "ErrorCode", Value: sql.Out{Dest: &code}},
	})

	assert.Equal(t, "EXEC SP_DO_LOGIN_ACTIONS @UserName = @UserName, @ErrorCode = @ErrorCode OUTPUT", q)
	assert.Equal(t, []any{sql.Named("UserName", "jdoe"), sql.Named("ErrorCode", sql.Out{Dest: &code})}, args)
}

func TestSQLServerExec_NoParams(t *testing.T) {
	q, args := SQLServerExec("SP_PING", nil)
	assert.Equal(t, "EXEC SP_PING", q)
	assert.Empty(t, args)
}

func TestPostgresSelect(t *testing.T) {
	q, args := PostgresSelect("uspS_JobReport", []Param{
		{Name: "StrJobId", Value: "J-1"},
		{Name: "StrSortBy", Value: 2},
	})

	assert.Equal(t, "SELECT * FROM usps_jobreport(strjobid => $1, strsortby => $2)", q)
	assert.Equal(t, []any{"J-1", 2}, args)
}

func TestScanRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	started := time.Date(2024, 3, 1, 8, 0, 0, 0, time.FixedZone("X", 3600))
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"Job_ID", "Project_Manager", "Start"}).
			AddRow(int64(7), []byte("Ann"), started).
			AddRow(int64(8), nil, nil),
	)

	rows, err := db.Query("SELECT")
	require.NoError(t, err)
	defer rows.Close()

	got, err := ScanRows(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []string{"Job_ID", "Project_Manager", "Start"}, got[0].Columns)
	assert.Equal(t, []any{int64(7), "Ann", started.UTC()}, got[0].Values)
	assert.Equal(t, []any{int64(8), nil, nil}, got[1].Values)
	require.NoError(t, mock.ExpectationsWereMet())
}
