package users

import (
	"strings"
	"time"
)

type User struct {
	ID             string     `json:"user_id"`                   // Unique identifier, generated on creation
	Username       string     `json:"username"`                  // Unique username, 3 to 50 characters
	Email          string     `json:"email"`                     // Unique email address, stored lower case
	PasswordHash   string     `json:"-"`                         // bcrypt digest of the password - never serialize
	Active         bool       `json:"is_active"`                 // Deactivated accounts can neither log in nor use tokens
	CreatedAt      time.Time  `json:"created_at"`                // Date and time when the user registered
	LastLogin      *time.Time `json:"last_login,omitempty"`      // Last authenticated request
	ProfilePicture *string    `json:"profile_picture,omitempty"` // URL of the profile picture
	Biography      *string    `json:"biography,omitempty"`       // Free text biography
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
}

// ProfilePatch carries the profile attributes to change. Nil fields are left
// untouched.
type ProfilePatch struct {
	ProfilePicture *string
	Biography      *string
	Latitude       *float64
	Longitude      *float64
}

func (p ProfilePatch) IsEmpty() bool {
	return p.ProfilePicture == nil && p.Biography == nil && p.Latitude == nil && p.Longitude == nil
}

// Apply copies every set field of the patch onto the user.
func (p ProfilePatch) Apply(u *User) {
	if p.ProfilePicture != nil {
		u.ProfilePicture = ptr(*p.ProfilePicture)
	}
	if p.Biography != nil {
		u.Biography = ptr(*p.Biography)
	}
	if p.Latitude != nil {
		u.Latitude = ptr(*p.Latitude)
	}
	if p.Longitude != nil {
		u.Longitude = ptr(*p.Longitude)
	}
}

// Clone returns a deep copy so callers can't mutate stored records.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastLogin != nil {
		c.LastLogin = ptr(*u.LastLogin)
	}
	if u.ProfilePicture != nil {
		c.ProfilePicture = ptr(*u.ProfilePicture)
	}
	if u.Biography != nil {
		c.Biography = ptr(*u.Biography)
	}
	if u.Latitude != nil {
		c.Latitude = ptr(*u.Latitude)
	}
	if u.Longitude != nil {
		c.Longitude = ptr(*u.Longitude)
	}
	return &c
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ptr[T any](v T) *T {
	return &v
}
