package dbx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestOpen_PingsAndTunesPool(t *testing.T) {
	mockDB, mock, err := sqlmock.NewWithDSN("dbx_open_ok", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	mock.ExpectPing()

	db, err := Open(context.Background(), "sqlmock", "dbx_open_ok", PoolOptions{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxIdleTime: time.Minute,
		ConnectTimeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Equal(t, 7, db.Stats().MaxOpenConnections)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_PingError(t *testing.T) {
	mockDB, mock, err := sqlmock.NewWithDSN("dbx_open_fail", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	mock.ExpectPing().WillReturnError(errors.New("login failed"))

	_, err = Open(context.Background(), "sqlmock", "dbx_open_fail", PoolOptions{MaxOpenConns: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ping sqlmock: login failed")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "no-such-driver", "", PoolOptions{})
	require.Error(t, err)
}

func TestDBTX_SatisfiedBySQLTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	var _ DBTX = db
	var _ DBTX = tx
}
