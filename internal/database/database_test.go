package database

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp), sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestMigrationsAreEmbedded(t *testing.T) {
	files, err := fs.Glob(Migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{
		"migrations/00001_create_accounts.sql",
		"migrations/00002_create_catalog.sql",
	}, files)

	body, err := fs.ReadFile(Migrations, files[0])
	require.NoError(t, err)
	require.Contains(t, string(body), "-- +goose Up")
	require.Contains(t, string(body), "users_email_key")
}

func TestRunMigrations(t *testing.T) {
	db, _ := newMockDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	t.Run("runs the embedded directory", func(t *testing.T) {
		var gotDir string
		gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			gotDir = dir
			return nil
		}
		require.NoError(t, RunMigrations(context.Background(), db))
		require.Equal(t, "migrations", gotDir)
	})

	t.Run("wraps failures", func(t *testing.T) {
		gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return errors.New("dirty database")
		}
		err := RunMigrations(context.Background(), db)
		require.ErrorContains(t, err, "RunMigrations: dirty database")
	})
}

func TestPing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectPing()
	require.NoError(t, Ping(context.Background(), db))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	require.ErrorContains(t, Ping(context.Background(), db), "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM user_genre`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := WithTx(ctx, db, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM user_genre")
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := WithTx(ctx, db, func(context.Context, DBTX) error {
			return errors.New("boom")
		})
		require.EqualError(t, err, "boom")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and rethrows a panic", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		require.PanicsWithValue(t, "kaput", func() {
			_ = WithTx(ctx, db, func(context.Context, DBTX) error {
				panic("kaput")
			})
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		called := false
		err := WithTx(ctx, db, func(context.Context, DBTX) error {
			called = true
			return nil
		})
		require.Error(t, err)
		require.False(t, called)
	})
}
