// Package seed loads the demo catalog and two demo musicians so that a fresh
// deployment can be exercised straight away.
package seed

import (
	"context"
	"time"

	"github.com/jrsteele09/mobile-musician-api/catalog"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/internal/utils"
	"github.com/jrsteele09/mobile-musician-api/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DemoPassword is shared by every demo account.
const DemoPassword = "Password123!"

// DemoUser describes one seeded account and what it plays.
type DemoUser struct {
	Username    string
	Email       string
	Profile     users.ProfilePatch
	Instruments []string // instrument names
	Genres      []string // genre names
}

var demoInstruments = []catalog.Instrument{
	{Name: "Guitar", Category: "Strings", IconURL: utils.Ptr("https://example.com/icons/guitar.png")},
	{Name: "Piano", Category: "Keyboard", IconURL: utils.Ptr("https://example.com/icons/piano.png")},
	{Name: "Drums", Category: "Percussion", IconURL: utils.Ptr("https://example.com/icons/drums.png")},
	{Name: "Violin", Category: "Strings", IconURL: utils.Ptr("https://example.com/icons/violin.png")},
	{Name: "Saxophone", Category: "Wind", IconURL: utils.Ptr("https://example.com/icons/saxophone.png")},
}

var demoGenres = []catalog.Genre{
	{Name: "Rock", Description: utils.Ptr("Electric sound and a strong beat")},
	{Name: "Jazz", Description: utils.Ptr("Born in the United States in the early 20th century")},
	{Name: "Pop", Description: utils.Ptr("Catchy melodies and simple structures")},
	{Name: "Classical", Description: utils.Ptr("Western art music, mostly from the 17th to the 19th century")},
	{Name: "Hip-Hop", Description: utils.Ptr("Urban music that grew up in New York in the 1970s")},
}

var demoUsers = []DemoUser{
	{
		Username: "musicien1",
		Email:    "musicien1@example.com",
		Profile: users.ProfilePatch{
			ProfilePicture: utils.Ptr("https://example.com/profiles/1.jpg"),
			Biography:      utils.Ptr("Passionate guitarist with 10 years of experience"),
			Latitude:       utils.Ptr(48.8566),
			Longitude:      utils.Ptr(2.3522),
		},
		Instruments: []string{"Guitar", "Piano"},
		Genres:      []string{"Rock", "Jazz"},
	},
	{
		Username: "musicien2",
		Email:    "musicien2@example.com",
		Profile: users.ProfilePatch{
			ProfilePicture: utils.Ptr("https://example.com/profiles/2.jpg"),
			Biography:      utils.Ptr("Classical pianist who moved over to jazz"),
			Latitude:       utils.Ptr(45.7640),
			Longitude:      utils.Ptr(4.8357),
		},
		Instruments: []string{"Piano", "Drums"},
		Genres:      []string{"Jazz", "Pop"},
	},
}

// Result summarises a seeding run.
type Result struct {
	Skipped     bool
	Instruments []catalog.Instrument
	Genres      []catalog.Genre
	Users       []*users.User
}

type Seeder struct {
	users   users.UserRepo
	catalog catalog.Repo
	hasher  users.Hasher
	nowTime func() time.Time
}

type Option func(*Seeder)

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h users.Hasher) Option {
	return func(s *Seeder) {
		s.hasher = h
	}
}

func New(userRepo users.UserRepo, catalogRepo catalog.Repo, opts ...Option) (*Seeder, error) {
	if userRepo == nil {
		return nil, errors.New("[seed.New] Users repo is required")
	}
	if catalogRepo == nil {
		return nil, errors.New("[seed.New] Catalog repo is required")
	}
	s := &Seeder{
		users:   userRepo,
		catalog: catalogRepo,
		hasher:  users.NewHasher(),
		nowTime: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run loads the demo data. Without force nothing happens once accounts,
// instruments and genres all exist. Running it again is safe: catalog entries
// are upserted by name and demo accounts are reset to their demo profile.
func (s *Seeder) Run(ctx context.Context, force bool) (*Result, error) {
	if !force {
		populated, err := s.populated(ctx)
		if err != nil {
			return nil, err
		}
		if populated {
			log.Info().Msg("seed: data already present, nothing to do")
			return &Result{Skipped: true}, nil
		}
	}

	result := &Result{}
	instrumentIDs := make(map[string]string, len(demoInstruments))
	for _, demo := range demoInstruments {
		instrument := demo
		if err := s.catalog.UpsertInstrument(ctx, &instrument); err != nil {
			return nil, errors.Wrapf(err, "seed instrument %s", demo.Name)
		}
		instrumentIDs[instrument.Name] = instrument.ID
		result.Instruments = append(result.Instruments, instrument)
	}

	genreIDs := make(map[string]string, len(demoGenres))
	for _, demo := range demoGenres {
		genre := demo
		if err := s.catalog.UpsertGenre(ctx, &genre); err != nil {
			return nil, errors.Wrapf(err, "seed genre %s", demo.Name)
		}
		genreIDs[genre.Name] = genre.ID
		result.Genres = append(result.Genres, genre)
	}

	for i, demo := range demoUsers {
		user, err := s.seedUser(ctx, demo)
		if err != nil {
			return nil, err
		}

		selections := make([]catalog.Selection, 0, len(demo.Instruments))
		for j, name := range demo.Instruments {
			selections = append(selections, catalog.Selection{
				InstrumentID: instrumentIDs[name],
				SkillLevel:   catalog.SkillLevels[(i+j)%len(catalog.SkillLevels)],
			})
		}
		if err := s.catalog.ReplaceUserInstruments(ctx, user.ID, selections); err != nil {
			return nil, errors.Wrapf(err, "seed instruments of %s", demo.Username)
		}

		ids := make([]string, 0, len(demo.Genres))
		for _, name := range demo.Genres {
			ids = append(ids, genreIDs[name])
		}
		if err := s.catalog.ReplaceUserGenres(ctx, user.ID, ids); err != nil {
			return nil, errors.Wrapf(err, "seed genres of %s", demo.Username)
		}

		result.Users = append(result.Users, user)
	}

	log.Info().
		Int("instruments", len(result.Instruments)).
		Int("genres", len(result.Genres)).
		Int("users", len(result.Users)).
		Msg("seed: demo data loaded")
	return result, nil
}

func (s *Seeder) populated(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, errors.Wrap(err, "seed count users")
	}
	instruments, err := s.catalog.ListInstruments(ctx)
	if err != nil {
		return false, errors.Wrap(err, "seed list instruments")
	}
	genres, err := s.catalog.ListGenres(ctx)
	if err != nil {
		return false, errors.Wrap(err, "seed list genres")
	}
	return count > 0 && len(instruments) > 0 && len(genres) > 0, nil
}

// seedUser gets or creates the demo account, then applies its demo profile.
func (s *Seeder) seedUser(ctx context.Context, demo DemoUser) (*users.User, error) {
	user, err := s.users.GetByEmail(ctx, demo.Email)
	switch {
	case err == nil:
		if !user.Active {
			if err := s.users.SetActive(ctx, user.ID, true); err != nil {
				return nil, errors.Wrapf(err, "seed reactivate %s", demo.Username)
			}
		}
	case apperrors.Is(err, apperrors.ErrUserNotFound):
		digest, err := s.hasher.Hash(DemoPassword)
		if err != nil {
			return nil, errors.Wrap(err, "seed hash password")
		}
		user = &users.User{
			Username:     demo.Username,
			Email:        demo.Email,
			PasswordHash: digest,
			Active:       true,
			CreatedAt:    s.nowTime().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, errors.Wrapf(err, "seed create %s", demo.Username)
		}
		log.Info().Str("user_id", user.ID).Str("email", demo.Email).Msg("seed: created demo account")
	default:
		return nil, errors.Wrapf(err, "seed lookup %s", demo.Username)
	}

	updated, err := s.users.UpdateProfile(ctx, user.ID, demo.Profile)
	if err != nil {
		return nil, errors.Wrapf(err, "seed profile of %s", demo.Username)
	}
	return updated, nil
}

// DemoUsers returns the accounts Run creates.
func DemoUsers() []DemoUser {
	return append([]DemoUser(nil), demoUsers...)
}
