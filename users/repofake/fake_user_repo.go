package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory account store. Stored records are copied on
// the way in and out.
type FakeUserRepo struct {
	users       map[string]*users.User
	emailIds    map[string]string // email to user id
	usernameIds map[string]string // username to user id
	lock        sync.RWMutex

	// FailLastLogin makes UpdateLastLogin return the error, for tests.
	FailLastLogin error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:       make(map[string]*users.User),
		emailIds:    make(map[string]string),
		usernameIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	email := users.NormalizeEmail(user.Email)
	if _, ok := ur.usernameIds[user.Username]; ok {
		return apperrors.ErrUsernameTaken
	}
	if _, ok := ur.emailIds[email]; ok {
		return apperrors.ErrEmailTaken
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Email = email

	ur.users[user.ID] = user.Clone()
	ur.emailIds[email] = user.ID
	ur.usernameIds[user.Username] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[users.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return ur.users[id].Clone(), nil
}

func (ur *FakeUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	found := make([]*users.User, 0, 2)
	if id, ok := ur.usernameIds[username]; ok {
		found = append(found, ur.users[id].Clone())
	}
	if id, ok := ur.emailIds[users.NormalizeEmail(email)]; ok {
		if len(found) == 0 || found[0].ID != id {
			found = append(found, ur.users[id].Clone())
		}
	}
	return found, nil
}

func (ur *FakeUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if ur.FailLastLogin != nil {
		return ur.FailLastLogin
	}
	u, ok := ur.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

func (ur *FakeUserRepo) UpdateProfile(_ context.Context, id string, patch users.ProfilePatch) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	patch.Apply(u)
	return u.Clone(), nil
}

func (ur *FakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func (ur *FakeUserRepo) Count(_ context.Context) (int, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users), nil
}

// Reset removes every stored account.
func (ur *FakeUserRepo) Reset() {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.users = make(map[string]*users.User)
	ur.emailIds = make(map[string]string)
	ur.usernameIds = make(map[string]string)
}
