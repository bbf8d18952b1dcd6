package auth

import (
	"context"
	"strings"

	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Identity is the verified account behind a request.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Active   bool   `json:"is_active"`
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively and exactly one token segment must
// follow it.
func BearerToken(authorization string) (string, error) {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingCredentials
	}
	return parts[1], nil
}

// Resolve turns an Authorization header into the identity of an active
// account. Every failure is terminal:
//   - no usable Bearer header: ErrMissingCredentials
//   - bad, expired or non-access token, or unknown account: ErrInvalidToken
//   - deactivated account: ErrAccountInactive
//
// On success the account's last login is recorded. That write is bookkeeping
// only and its failure does not fail the request.
func (as *AuthenticationService) Resolve(ctx context.Context, authorization string) (*Identity, error) {
	raw, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}

	claims, err := as.tokens.Decode(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !claims.IsAccessToken() {
		return nil, ErrInvalidToken
	}

	user, err := as.repos.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, errors.Wrap(err, "AuthenticationService.Resolve GetByID")
	}

	if !user.Active {
		return nil, ErrAccountInactive
	}

	if err := as.repos.Users.UpdateLastLogin(ctx, user.ID, as.nowTime().UTC()); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	return &Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Active:   user.Active,
	}, nil
}
