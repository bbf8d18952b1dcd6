// Package app wires configuration into the stores and services shared by the
// server and seed commands.
package app

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/jrsteele09/mobile-musician-api/auth"
	"github.com/jrsteele09/mobile-musician-api/catalog"
	fakecatalogrepo "github.com/jrsteele09/mobile-musician-api/catalog/repofake"
	pgcatalog "github.com/jrsteele09/mobile-musician-api/catalog/repopostgres"
	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/jrsteele09/mobile-musician-api/internal/database"
	"github.com/jrsteele09/mobile-musician-api/profiles"
	"github.com/jrsteele09/mobile-musician-api/storage"
	"github.com/jrsteele09/mobile-musician-api/storage/localstore"
	"github.com/jrsteele09/mobile-musician-api/storage/s3store"
	"github.com/jrsteele09/mobile-musician-api/token"
	"github.com/jrsteele09/mobile-musician-api/users"
	fakeuserrepo "github.com/jrsteele09/mobile-musician-api/users/repofake"
	pgusers "github.com/jrsteele09/mobile-musician-api/users/repopostgres"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigureLogging sets the global zerolog level and, in development, a
// human readable console writer.
func ConfigureLogging(cfg config.EnvConfig) {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// Stores are the repositories behind the services. DB is nil when the
// in-memory stores are in use.
type Stores struct {
	DB      *sql.DB
	Users   users.UserRepo
	Catalog catalog.Repo
}

// Close releases the database connection pool, if any.
func (s *Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Ping reports database reachability. It is nil safe for in-memory stores.
func (s *Stores) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return database.Ping(ctx, s.DB)
}

// OpenStores connects to Postgres when DATABASE_URL is set and falls back to
// in-memory stores otherwise.
func OpenStores(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	if cfg.GetDatabaseURL() == "" {
		log.Warn().Msg("DATABASE_URL is not set, using in-memory stores: data is lost on restart")
		return &Stores{
			Users:   fakeuserrepo.NewFakeUserRepo(),
			Catalog: fakecatalogrepo.NewFakeCatalogRepo(),
		}, nil
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "OpenStores")
	}
	return &Stores{
		DB:      db,
		Users:   pgusers.NewUserRepo(db),
		Catalog: pgcatalog.NewCatalogRepo(db),
	}, nil
}

// OpenObjectStore picks S3 when a bucket is configured and the local static
// directory otherwise.
func OpenObjectStore(ctx context.Context, cfg config.Config) (storage.ObjectStore, error) {
	if cfg.GetS3Bucket() != "" {
		store, err := s3store.New(ctx, cfg)
		if err != nil {
			return nil, errors.Wrap(err, "OpenObjectStore s3")
		}
		log.Info().Str("bucket", cfg.GetS3Bucket()).Msg("storing uploads in S3")
		return store, nil
	}

	store, err := localstore.New(cfg.GetStaticDir(), cfg.GetBaseURL())
	if err != nil {
		return nil, errors.Wrap(err, "OpenObjectStore local")
	}
	log.Info().Str("dir", store.Dir()).Msg("storing uploads on local disk")
	return store, nil
}

// Services are the domain services built on a set of stores.
type Services struct {
	Auth     *auth.AuthenticationService
	Profiles *profiles.Service
}

func NewServices(cfg config.Config, stores *Stores, objects storage.ObjectStore) (*Services, error) {
	tokens, err := token.NewFromConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "NewServices token manager")
	}

	authService, err := auth.NewAuthenticationService(
		auth.Repos{Users: stores.Users},
		tokens,
		auth.WithHasher(users.NewHasher(users.WithCost(cfg.GetBcryptCost()))),
	)
	if err != nil {
		return nil, errors.Wrap(err, "NewServices authentication")
	}

	profileService, err := profiles.NewService(stores.Users, stores.Catalog, objects)
	if err != nil {
		return nil, errors.Wrap(err, "NewServices profiles")
	}

	return &Services{Auth: authService, Profiles: profileService}, nil
}
