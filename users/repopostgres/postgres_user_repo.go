package repopostgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/mobile-musician-api/internal/database"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/users"
	"github.com/pkg/errors"
)

const (
	uniqueViolation    = "23505"
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

const userColumns = `id, username, email, password_hash, is_active, created_at, last_login,
       profile_picture, biography, latitude, longitude`

var _ users.UserRepo = (*UserRepo)(nil)

// UserRepo is the Postgres account store.
type UserRepo struct {
	db database.DBTX
}

func NewUserRepo(db database.DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Email = users.NormalizeEmail(user.Email)

	query := `INSERT INTO users (id, username, email, password_hash, is_active, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Active, user.CreatedAt)
	if err != nil {
		if taken := uniqueError(err); taken != nil {
			return taken
		}
		return errors.Wrap(err, "UserRepo.Create")
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	// Token subjects are untrusted input and the column is a UUID
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE id = $1`
	return r.scanOne(ctx, "UserRepo.GetByID", query, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE email = $1`
	return r.scanOne(ctx, "UserRepo.GetByEmail", query, users.NormalizeEmail(email))
}

func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) ([]*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE username = $1 OR email = $2`

	rows, err := r.db.QueryContext(ctx, query, username, users.NormalizeEmail(email))
	if err != nil {
		return nil, errors.Wrap(err, "UserRepo.FindByUsernameOrEmail")
	}
	defer rows.Close()

	found := make([]*users.User, 0, 2)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "UserRepo.FindByUsernameOrEmail scan")
		}
		found = append(found, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "UserRepo.FindByUsernameOrEmail rows")
	}
	return found, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrUserNotFound
	}
	query := `UPDATE users SET last_login = $2
		 WHERE id = $1`
	return r.execOne(ctx, "UserRepo.UpdateLastLogin", query, id, at)
}

// UpdateProfile writes only the columns set in the patch and returns the
// stored record.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, patch users.ProfilePatch) (*users.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	query := `UPDATE users SET
		 profile_picture = COALESCE($2, profile_picture),
		 biography = COALESCE($3, biography),
		 latitude = COALESCE($4, latitude),
		 longitude = COALESCE($5, longitude)
		 WHERE id = $1
		 RETURNING ` + userColumns

	return r.scanOne(ctx, "UserRepo.UpdateProfile", query,
		id, nullString(patch.ProfilePicture), nullString(patch.Biography),
		nullFloat(patch.Latitude), nullFloat(patch.Longitude))
}

func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrUserNotFound
	}
	query := `UPDATE users SET is_active = $2
		 WHERE id = $1`
	return r.execOne(ctx, "UserRepo.SetActive", query, id, active)
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "UserRepo.Count")
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepo) scanOne(ctx context.Context, op, query string, args ...any) (*users.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, op)
	}
	return u, nil
}

func (r *UserRepo) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func scanUser(row rowScanner) (*users.User, error) {
	var (
		u         users.User
		lastLogin sql.NullTime
		picture   sql.NullString
		bio       sql.NullString
		lat       sql.NullFloat64
		lng       sql.NullFloat64
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Active, &u.CreatedAt,
		&lastLogin, &picture, &bio, &lat, &lng)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	if picture.Valid {
		u.ProfilePicture = &picture.String
	}
	if bio.Valid {
		u.Biography = &bio.String
	}
	if lat.Valid {
		u.Latitude = &lat.Float64
	}
	if lng.Valid {
		u.Longitude = &lng.Float64
	}
	return &u, nil
}

// uniqueError maps a unique violation on users to the matching sentinel.
func uniqueError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case usernameConstraint:
		return apperrors.ErrUsernameTaken
	case emailConstraint:
		return apperrors.ErrEmailTaken
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
