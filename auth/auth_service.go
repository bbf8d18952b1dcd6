package auth

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/token"
	"github.com/jrsteele09/mobile-musician-api/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const TokenTypeBearer = "bearer"

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed JWT to present as "Authorization: Bearer <token>"
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// AuthenticationService registers accounts, exchanges credentials for access
// tokens and resolves bearer tokens back into identities.
type AuthenticationService struct {
	repos     Repos            // All repository dependencies
	tokens    *token.Manager   // Issues and verifies access tokens
	hasher    users.Hasher     // Password digests
	validator *Validator       // Input validation
	nowTime   func() time.Time // nowTime function (injectable for testing)
}

// AuthenticationServiceOption defines a function type to modify the AuthenticationService instance.
type AuthenticationServiceOption func(*AuthenticationService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthenticationServiceOption {
	return func(as *AuthenticationService) {
		as.nowTime = nowFunc
	}
}

// WithHasher replaces the default bcrypt hasher, e.g. to lower the cost in tests.
func WithHasher(hasher users.Hasher) AuthenticationServiceOption {
	return func(as *AuthenticationService) {
		as.hasher = hasher
	}
}

// NewAuthenticationService initializes a new AuthenticationService with required dependencies.
func NewAuthenticationService(
	repos Repos,
	tokens *token.Manager,
	options ...AuthenticationServiceOption,
) (*AuthenticationService, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewAuthenticationService] Users repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewAuthenticationService] token manager is required")
	}

	as := &AuthenticationService{
		repos:     repos,
		tokens:    tokens,
		hasher:    users.NewHasher(),
		validator: NewValidator(),
		nowTime:   time.Now,
	}

	for _, opt := range options {
		opt(as)
	}

	return as, nil
}

// Register validates the request, rejects usernames and emails that are
// already taken and stores a new active account.
func (as *AuthenticationService) Register(ctx context.Context, req RegistrationRequest) (*users.User, error) {
	req = req.normalized()
	if err := as.validator.ValidateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := as.repos.Users.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, errors.Wrap(err, "AuthenticationService.Register FindByUsernameOrEmail")
	}
	if conflict := conflicts(existing, req); conflict != nil {
		return nil, conflict
	}

	digest, err := as.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "AuthenticationService.Register Hash")
	}

	user := &users.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
		Active:       true,
		CreatedAt:    as.nowTime().UTC(),
	}
	if err := as.repos.Users.Create(ctx, user); err != nil {
		// A concurrent registration can still win the race to the unique index
		if apperrors.Is(err, apperrors.ErrUsernameTaken) || apperrors.Is(err, apperrors.ErrEmailTaken) {
			return nil, conflictFromStore(err)
		}
		return nil, errors.Wrap(err, "AuthenticationService.Register Create")
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("account registered")
	return user, nil
}

// Login exchanges an email and password for an access token. An unknown
// email and a wrong password produce the same ErrInvalidCredentials.
func (as *AuthenticationService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if err := as.validator.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := as.repos.Users.GetByEmail(ctx, users.NormalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "AuthenticationService.Login GetByEmail")
	}

	if !as.hasher.Check(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountInactive
	}

	accessToken, err := as.tokens.CreateAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "AuthenticationService.Login CreateAccessToken")
	}

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
	}, nil
}

// Logout keeps the endpoint symmetric with Login. Tokens are stateless, so
// nothing is invalidated server side: clients must discard the token.
func (as *AuthenticationService) Logout(_ context.Context, identity *Identity) error {
	if identity != nil {
		log.Debug().Str("user_id", identity.UserID).Msg("logout requested")
	}
	return nil
}

func conflicts(existing []*users.User, req RegistrationRequest) error {
	fields := validation.Errors{}
	for _, u := range existing {
		if u.Username == req.Username {
			fields["username"] = validation.NewError("validation_username_taken", "username already in use")
		}
		if users.NormalizeEmail(u.Email) == req.Email {
			fields["email"] = validation.NewError("validation_email_taken", "email already in use")
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &apperrors.ConflictError{Fields: fields}
}

func conflictFromStore(err error) error {
	fields := validation.Errors{}
	if apperrors.Is(err, apperrors.ErrUsernameTaken) {
		fields["username"] = validation.NewError("validation_username_taken", "username already in use")
	}
	if apperrors.Is(err, apperrors.ErrEmailTaken) {
		fields["email"] = validation.NewError("validation_email_taken", "email already in use")
	}
	return &apperrors.ConflictError{Fields: fields}
}
