// Package database opens the Postgres connection pool, applies the embedded
// schema migrations and provides the transaction helper shared by the
// Postgres repositories.
package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/pkg/errors"
)

const pingTimeout = 5 * time.Second

// Open connects to DATABASE_URL through the pgx stdlib driver and verifies
// the connection. Migrations run when RUN_MIGRATIONS is enabled.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.GetDatabaseURL()
	if dsn == "" {
		return nil, errors.New("[database.Open] DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "database.Open")
	}
	db.SetMaxOpenConns(cfg.GetMaxOpenConns())
	db.SetMaxIdleConns(cfg.GetMaxOpenConns())
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.GetRunMigrations() {
		if err := RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Ping checks the database is reachable, bounded by a short timeout.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "database ping")
	}
	return nil
}
