package users

import (
	"context"
	"time"
)

// UserRepo is the account store. Lookups that match nothing return
// errors.ErrUserNotFound from internal/errors.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FindByUsernameOrEmail returns every account holding either value.
	FindByUsernameOrEmail(ctx context.Context, username, email string) ([]*User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)
	SetActive(ctx context.Context, id string, active bool) error
	Count(ctx context.Context) (int, error)
}
