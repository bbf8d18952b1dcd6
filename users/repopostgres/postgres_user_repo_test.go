package repopostgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/users"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const testUserID = "5b0d7c8e-3f5e-4f38-9a53-0d3b8b8e2a11"

var userRowColumns = []string{"id", "username", "email", "password_hash", "is_active", "created_at",
	"last_login", "profile_picture", "biography", "latitude", "longitude"}

func newRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewUserRepo(db), mock
}

func userRow(created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(testUserID, "musicien1", "musicien1@example.com", "$2a$digest", true, created,
			nil, nil, "Jazz bassist", 48.85, nil)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*email,\s*password_hash,\s*is_active,\s*created_at\)`

	t.Run("assigns an id and lower cases the email", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).
			WithArgs(sqlmock.AnyArg(), "musicien1", "musicien1@example.com", "$2a$digest", true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		u := &users.User{Username: "musicien1", Email: "Musicien1@Example.com", PasswordHash: "$2a$digest", Active: true}
		require.NoError(t, repo.Create(ctx, u))
		require.Len(t, u.ID, 36)
		require.Equal(t, "musicien1@example.com", u.Email)
		require.False(t, u.CreatedAt.IsZero())
	})

	t.Run("maps unique violations by constraint", func(t *testing.T) {
		cases := map[string]error{
			"users_username_key": apperrors.ErrUsernameTaken,
			"users_email_key":    apperrors.ErrEmailTaken,
		}
		for constraint, want := range cases {
			repo, mock := newRepoWithMock(t)
			mock.ExpectExec(q).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: constraint})

			err := repo.Create(ctx, &users.User{Username: "musicien1", Email: "musicien1@example.com"})
			require.ErrorIs(t, err, want, constraint)
		}
	})

	t.Run("wraps other failures", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnError(errors.New("db down"))

		err := repo.Create(ctx, &users.User{Username: "musicien1", Email: "musicien1@example.com"})
		require.ErrorContains(t, err, "UserRepo.Create: db down")
		require.NotErrorIs(t, err, apperrors.ErrUsernameTaken)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	q := `(?s)^SELECT\s+id,\s*username,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(testUserID).WillReturnRows(userRow(created))

		u, err := repo.GetByID(ctx, testUserID)
		require.NoError(t, err)
		require.Equal(t, "musicien1", u.Username)
		require.True(t, u.Active)
		require.Equal(t, created, u.CreatedAt)
		require.Nil(t, u.LastLogin)
		require.Nil(t, u.ProfilePicture)
		require.Equal(t, "Jazz bassist", *u.Biography)
		require.Equal(t, 48.85, *u.Latitude)
		require.Nil(t, u.Longitude)
	})

	t.Run("no rows", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(testUserID).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, testUserID)
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		repo, _ := newRepoWithMock(t)

		_, err := repo.GetByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("musicien1@example.com").WillReturnRows(userRow(time.Now()))

	u, err := repo.GetByEmail(context.Background(), " MUSICIEN1@example.com")
	require.NoError(t, err)
	require.Equal(t, testUserID, u.ID)
}

func TestFindByUsernameOrEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s+OR\s+email\s*=\s*\$2$`

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(testUserID, "musicien1", "musicien1@example.com", "h", true, time.Now(), nil, nil, nil, nil, nil).
		AddRow("7e4c1f7a-0000-4000-8000-000000000002", "musicien2", "musicien2@example.com", "h", true, time.Now(), nil, nil, nil, nil, nil)
	mock.ExpectQuery(q).WithArgs("musicien1", "musicien2@example.com").WillReturnRows(rows)

	found, err := repo.FindByUsernameOrEmail(context.Background(), "musicien1", "Musicien2@example.com")
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, "musicien2", found[1].Username)
}

func TestUpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	q := `(?s)^UPDATE\s+users\s+SET\s+last_login\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1$`
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("updated", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(testUserID, at).WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.UpdateLastLogin(ctx, testUserID, at))
	})

	t.Run("unknown account", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(testUserID, at).WillReturnResult(sqlmock.NewResult(0, 0))
		require.ErrorIs(t, repo.UpdateLastLogin(ctx, testUserID, at), apperrors.ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^UPDATE\s+users\s+SET.*COALESCE\(\$2,\s*profile_picture\).*RETURNING\s+id,`

	bio := "Jazz bassist"
	mock.ExpectQuery(q).
		WithArgs(testUserID, nil, bio, nil, nil).
		WillReturnRows(userRow(time.Now()))

	u, err := repo.UpdateProfile(context.Background(), testUserID, users.ProfilePatch{Biography: &bio})
	require.NoError(t, err)
	require.Equal(t, bio, *u.Biography)
}

func TestSetActiveAndCount(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+is_active\s*=\s*\$2`).
		WithArgs(testUserID, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetActive(context.Background(), testUserID, false))

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM users$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
