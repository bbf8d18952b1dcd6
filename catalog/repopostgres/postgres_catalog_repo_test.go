package repopostgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/mobile-musician-api/catalog"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	userID   = "5b0d7c8e-3f5e-4f38-9a53-0d3b8b8e2a11"
	guitarID = "11111111-1111-4111-8111-111111111111"
	drumsID  = "22222222-2222-4222-8222-222222222222"
	jazzID   = "33333333-3333-4333-8333-333333333333"
)

func newRepoWithMock(t *testing.T) (*CatalogRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewCatalogRepo(db), mock
}

func TestListInstruments(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	rows := sqlmock.NewRows([]string{"id", "name", "category", "icon_url"}).
		AddRow(drumsID, "Drums", "Percussion", nil).
		AddRow(guitarID, "Guitar", "Strings", "https://cdn.example.com/guitar.svg")
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*category,\s*icon_url\s+FROM\s+instruments\s+ORDER\s+BY\s+name$`).
		WillReturnRows(rows)

	list, err := repo.ListInstruments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Nil(t, list[0].IconURL)
	require.Equal(t, "https://cdn.example.com/guitar.svg", *list[1].IconURL)
}

func TestListGenres_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+genres`).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))

	list, err := repo.ListGenres(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestUpsertInstrument(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+instruments.*ON\s+CONFLICT\s+\(name\)\s+DO\s+UPDATE.*RETURNING\s+id$`).
		WithArgs(sqlmock.AnyArg(), "Guitar", "Strings", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(guitarID))

	i := &catalog.Instrument{Name: "Guitar", Category: "Strings"}
	require.NoError(t, repo.UpsertInstrument(context.Background(), i))
	require.Equal(t, guitarID, i.ID)
}

func TestGetUserInstruments(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	rows := sqlmock.NewRows([]string{"id", "name", "category", "icon_url", "skill_level"}).
		AddRow(guitarID, "Guitar", "Strings", nil, "expert")
	mock.ExpectQuery(`(?s)FROM\s+user_instrument\s+ui\s+JOIN\s+instruments`).WithArgs(userID).WillReturnRows(rows)

	list, err := repo.GetUserInstruments(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, []catalog.UserInstrument{{
		Instrument: catalog.Instrument{ID: guitarID, Name: "Guitar", Category: "Strings"},
		SkillLevel: catalog.SkillExpert,
	}}, list)
}

func TestReplaceUserInstruments(t *testing.T) {
	ctx := context.Background()
	selections := []catalog.Selection{
		{InstrumentID: guitarID, SkillLevel: catalog.SkillExpert},
		{InstrumentID: drumsID, SkillLevel: catalog.SkillBeginner},
	}

	t.Run("deletes then inserts in one transaction", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`^DELETE FROM user_instrument WHERE user_id = \$1$`).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`^INSERT INTO user_instrument`).WithArgs(userID, guitarID, "expert").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`^INSERT INTO user_instrument`).WithArgs(userID, drumsID, "beginner").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.ReplaceUserInstruments(ctx, userID, selections))
	})

	t.Run("foreign key violation rolls back", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`^DELETE FROM user_instrument`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`^INSERT INTO user_instrument`).WillReturnError(&pgconn.PgError{Code: "23503"})
		mock.ExpectRollback()

		err := repo.ReplaceUserInstruments(ctx, userID, selections[:1])
		require.ErrorIs(t, err, catalog.ErrUnknownEntry)
	})

	t.Run("malformed id is unknown", func(t *testing.T) {
		repo, _ := newRepoWithMock(t)
		err := repo.ReplaceUserInstruments(ctx, userID, []catalog.Selection{{InstrumentID: "guitar", SkillLevel: catalog.SkillExpert}})
		require.ErrorIs(t, err, catalog.ErrUnknownEntry)
	})
}

func TestReplaceUserGenres(t *testing.T) {
	ctx := context.Background()

	t.Run("empty set only deletes", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`^DELETE FROM user_genre WHERE user_id = \$1$`).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		require.NoError(t, repo.ReplaceUserGenres(ctx, userID, nil))
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`^DELETE FROM user_genre`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`^INSERT INTO user_genre`).WithArgs(userID, jazzID).WillReturnError(errors.New("db down"))
		mock.ExpectRollback()

		err := repo.ReplaceUserGenres(ctx, userID, []string{jazzID})
		require.ErrorContains(t, err, "CatalogRepo.ReplaceUserGenres: db down")
	})
}
