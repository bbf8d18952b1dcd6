package profiles

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/mobile-musician-api/catalog"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/storage"
	"github.com/jrsteele09/mobile-musician-api/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Accepted picture types and the extension stored with each.
var pictureExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service implements the profile endpoints.
type Service struct {
	users          users.UserRepo
	catalog        catalog.Repo
	store          storage.ObjectStore
	maxPictureSize int64
}

type ServiceOption func(*Service)

// WithMaxPictureSize overrides the 5 MiB picture limit.
func WithMaxPictureSize(n int64) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxPictureSize = n
		}
	}
}

func NewService(userRepo users.UserRepo, catalogRepo catalog.Repo, store storage.ObjectStore, opts ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[profiles.NewService] Users repo is required")
	}
	if catalogRepo == nil {
		return nil, errors.New("[profiles.NewService] Catalog repo is required")
	}
	if store == nil {
		return nil, errors.New("[profiles.NewService] object store is required")
	}

	s := &Service{
		users:          userRepo,
		catalog:        catalogRepo,
		store:          store,
		maxPictureSize: DefaultMaxPictureSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) MaxPictureSize() int64 {
	return s.maxPictureSize
}

// Me returns the caller's own account.
func (s *Service) Me(ctx context.Context, userID string) (*users.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.Me")
	}
	return u, nil
}

// Update applies a partial update after validating every supplied field.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*users.User, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	patch := req.patch()
	if patch.IsEmpty() {
		return s.Me(ctx, userID)
	}

	u, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.Update")
	}
	return u, nil
}

// UploadPicture stores a new profile picture and points the profile at it.
// The stored type is sniffed from the content. The client supplied filename
// and contentType are only logged.
func (s *Service) UploadPicture(ctx context.Context, userID, filename, contentType string, body io.Reader, size int64) (*users.User, error) {
	if size > s.maxPictureSize {
		return nil, ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxPictureSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "profiles.UploadPicture read")
	}
	if int64(len(data)) > s.maxPictureSize {
		return nil, ErrImageTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	detected := http.DetectContentType(data)
	ext, ok := pictureExtensions[detected]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedImage, "detected %s", detected)
	}
	if contentType != "" && contentType != detected {
		log.Debug().Str("declared", contentType).Str("detected", detected).Str("filename", filename).Msg("picture content type mismatch")
	}

	key := fmt.Sprintf("profiles/%s/%s%s", userID, uuid.New().String(), ext)
	url, err := s.store.Put(ctx, key, detected, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "profiles.UploadPicture store")
	}
	log.Debug().Str("user_id", userID).Str("key", key).Msg("profile picture stored")

	u, err := s.users.UpdateProfile(ctx, userID, users.ProfilePatch{ProfilePicture: &url})
	if err != nil {
		return nil, errors.Wrap(err, "profiles.UploadPicture update")
	}
	return u, nil
}

// Public returns the visitor view of an active account.
func (s *Service) Public(ctx context.Context, userID string) (*PublicProfile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.Public")
	}
	if !u.Active {
		return nil, apperrors.ErrUserNotFound
	}

	instruments, err := s.catalog.GetUserInstruments(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.Public instruments")
	}
	genres, err := s.catalog.GetUserGenres(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrap(err, "profiles.Public genres")
	}

	return &PublicProfile{
		UserID:         u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Biography:      u.Biography,
		Latitude:       u.Latitude,
		Longitude:      u.Longitude,
		Instruments:    instruments,
		Genres:         genres,
	}, nil
}

func (s *Service) Instruments(ctx context.Context, userID string) ([]catalog.UserInstrument, error) {
	list, err := s.catalog.GetUserInstruments(ctx, userID)
	return list, errors.Wrap(err, "profiles.Instruments")
}

// SetInstruments replaces everything the account plays.
func (s *Service) SetInstruments(ctx context.Context, userID string, selections []catalog.Selection) ([]catalog.UserInstrument, error) {
	if err := validateSelections(selections); err != nil {
		return nil, err
	}
	if err := s.catalog.ReplaceUserInstruments(ctx, userID, selections); err != nil {
		if errors.Is(err, catalog.ErrUnknownEntry) {
			return nil, &UnknownEntryError{Field: "instruments"}
		}
		return nil, errors.Wrap(err, "profiles.SetInstruments")
	}
	return s.Instruments(ctx, userID)
}

func (s *Service) Genres(ctx context.Context, userID string) ([]catalog.Genre, error) {
	list, err := s.catalog.GetUserGenres(ctx, userID)
	return list, errors.Wrap(err, "profiles.Genres")
}

// SetGenres replaces the genres the account plays.
func (s *Service) SetGenres(ctx context.Context, userID string, genreIDs []string) ([]catalog.Genre, error) {
	if err := validateGenreIDs(genreIDs); err != nil {
		return nil, err
	}
	if err := s.catalog.ReplaceUserGenres(ctx, userID, genreIDs); err != nil {
		if errors.Is(err, catalog.ErrUnknownEntry) {
			return nil, &UnknownEntryError{Field: "genres"}
		}
		return nil, errors.Wrap(err, "profiles.SetGenres")
	}
	return s.Genres(ctx, userID)
}
