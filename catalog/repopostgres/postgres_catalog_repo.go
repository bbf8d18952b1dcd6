package repopostgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/mobile-musician-api/catalog"
	"github.com/jrsteele09/mobile-musician-api/internal/database"
	"github.com/pkg/errors"
)

const foreignKeyViolation = "23503"

var _ catalog.Repo = (*CatalogRepo)(nil)

// CatalogRepo is the Postgres catalog. Selection replacement needs a
// transaction so it holds the pool rather than a DBTX.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) ListInstruments(ctx context.Context) ([]catalog.Instrument, error) {
	query := `SELECT id, name, category, icon_url FROM instruments
		 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "CatalogRepo.ListInstruments")
	}
	defer rows.Close()

	list := []catalog.Instrument{}
	for rows.Next() {
		i, err := scanInstrument(rows)
		if err != nil {
			return nil, errors.Wrap(err, "CatalogRepo.ListInstruments scan")
		}
		list = append(list, i)
	}
	return list, errors.Wrap(rows.Err(), "CatalogRepo.ListInstruments rows")
}

func (r *CatalogRepo) ListGenres(ctx context.Context) ([]catalog.Genre, error) {
	query := `SELECT id, name, description FROM genres
		 ORDER BY name`
	return r.queryGenres(ctx, "CatalogRepo.ListGenres", query)
}

func (r *CatalogRepo) UpsertInstrument(ctx context.Context, instrument *catalog.Instrument) error {
	if instrument.ID == "" {
		instrument.ID = uuid.New().String()
	}
	query := `INSERT INTO instruments (id, name, category, icon_url)
         VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category, icon_url = EXCLUDED.icon_url
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		instrument.ID, instrument.Name, instrument.Category, nullString(instrument.IconURL)).Scan(&instrument.ID)
	return errors.Wrap(err, "CatalogRepo.UpsertInstrument")
}

func (r *CatalogRepo) UpsertGenre(ctx context.Context, genre *catalog.Genre) error {
	if genre.ID == "" {
		genre.ID = uuid.New().String()
	}
	query := `INSERT INTO genres (id, name, description)
         VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, genre.ID, genre.Name, nullString(genre.Description)).Scan(&genre.ID)
	return errors.Wrap(err, "CatalogRepo.UpsertGenre")
}

func (r *CatalogRepo) GetUserInstruments(ctx context.Context, userID string) ([]catalog.UserInstrument, error) {
	list := []catalog.UserInstrument{}
	if _, err := uuid.Parse(userID); err != nil {
		return list, nil
	}
	query := `SELECT i.id, i.name, i.category, i.icon_url, ui.skill_level
		 FROM user_instrument ui JOIN instruments i ON i.id = ui.instrument_id
		 WHERE ui.user_id = $1
		 ORDER BY i.name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "CatalogRepo.GetUserInstruments")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ui   catalog.UserInstrument
			icon sql.NullString
		)
		if err := rows.Scan(&ui.ID, &ui.Name, &ui.Category, &icon, &ui.SkillLevel); err != nil {
			return nil, errors.Wrap(err, "CatalogRepo.GetUserInstruments scan")
		}
		if icon.Valid {
			ui.IconURL = &icon.String
		}
		list = append(list, ui)
	}
	return list, errors.Wrap(rows.Err(), "CatalogRepo.GetUserInstruments rows")
}

func (r *CatalogRepo) ReplaceUserInstruments(ctx context.Context, userID string, selections []catalog.Selection) error {
	for _, s := range selections {
		if _, err := uuid.Parse(s.InstrumentID); err != nil {
			return catalog.ErrUnknownEntry
		}
	}

	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_instrument WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, s := range selections {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO user_instrument (user_id, instrument_id, skill_level) VALUES ($1, $2, $3)`,
				userID, s.InstrumentID, string(s.SkillLevel))
			if err != nil {
				return err
			}
		}
		return nil
	})
	return mapWriteError(err, "CatalogRepo.ReplaceUserInstruments")
}

func (r *CatalogRepo) GetUserGenres(ctx context.Context, userID string) ([]catalog.Genre, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []catalog.Genre{}, nil
	}
	query := `SELECT g.id, g.name, g.description
		 FROM user_genre ug JOIN genres g ON g.id = ug.genre_id
		 WHERE ug.user_id = $1
		 ORDER BY g.name`
	return r.queryGenres(ctx, "CatalogRepo.GetUserGenres", query, userID)
}

func (r *CatalogRepo) ReplaceUserGenres(ctx context.Context, userID string, genreIDs []string) error {
	for _, id := range genreIDs {
		if _, err := uuid.Parse(id); err != nil {
			return catalog.ErrUnknownEntry
		}
	}

	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_genre WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, id := range genreIDs {
			_, err := tx.ExecContext(ctx, `INSERT INTO user_genre (user_id, genre_id) VALUES ($1, $2)`, userID, id)
			if err != nil {
				return err
			}
		}
		return nil
	})
	return mapWriteError(err, "CatalogRepo.ReplaceUserGenres")
}

func (r *CatalogRepo) queryGenres(ctx context.Context, op, query string, args ...any) ([]catalog.Genre, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer rows.Close()

	list := []catalog.Genre{}
	for rows.Next() {
		var (
			g    catalog.Genre
			desc sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &desc); err != nil {
			return nil, errors.Wrap(err, op+" scan")
		}
		if desc.Valid {
			g.Description = &desc.String
		}
		list = append(list, g)
	}
	return list, errors.Wrap(rows.Err(), op+" rows")
}

func scanInstrument(rows *sql.Rows) (catalog.Instrument, error) {
	var (
		i    catalog.Instrument
		icon sql.NullString
	)
	if err := rows.Scan(&i.ID, &i.Name, &i.Category, &icon); err != nil {
		return i, err
	}
	if icon.Valid {
		i.IconURL = &icon.String
	}
	return i, nil
}

// mapWriteError turns a foreign key violation into ErrUnknownEntry.
func mapWriteError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return catalog.ErrUnknownEntry
	}
	return errors.Wrap(err, op)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
