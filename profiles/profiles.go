// Package profiles manages the musician side of an account: the editable
// profile, the profile picture and the instruments and genres played.
package profiles

import (
	"github.com/jrsteele09/mobile-musician-api/catalog"
	"github.com/jrsteele09/mobile-musician-api/users"
	"github.com/pkg/errors"
)

const (
	DefaultMaxPictureSize = 5 << 20
	MaxBiographyLength    = 500
)

var (
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrImageTooLarge       = errors.New("image too large")
	ErrEmptyImage          = errors.New("empty image")
	ErrUnknownCatalogEntry = catalog.ErrUnknownEntry
)

// UnknownEntryError names the request field holding an id that is not in the
// catalog. It matches ErrUnknownCatalogEntry with errors.Is.
type UnknownEntryError struct {
	Field string
}

func (e *UnknownEntryError) Error() string {
	return e.Field + ": " + ErrUnknownCatalogEntry.Error()
}

func (e *UnknownEntryError) Unwrap() error {
	return ErrUnknownCatalogEntry
}

// UpdateRequest is a partial profile update. Absent members are left as they
// are.
type UpdateRequest struct {
	ProfilePicture *string  `json:"profile_picture"`
	Biography      *string  `json:"biography"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

func (r UpdateRequest) patch() users.ProfilePatch {
	return users.ProfilePatch{
		ProfilePicture: r.ProfilePicture,
		Biography:      r.Biography,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
	}
}

// PublicProfile is what any visitor may see about a musician. It never
// carries the email address.
type PublicProfile struct {
	UserID         string                   `json:"user_id"`
	Username       string                   `json:"username"`
	ProfilePicture *string                  `json:"profile_picture"`
	Biography      *string                  `json:"biography"`
	Latitude       *float64                 `json:"latitude"`
	Longitude      *float64                 `json:"longitude"`
	Instruments    []catalog.UserInstrument `json:"instruments"`
	Genres         []catalog.Genre          `json:"genres"`
}
