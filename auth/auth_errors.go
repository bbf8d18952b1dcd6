package auth

import apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	// ErrAccountInactive is reported only once the caller has proven valid
	// credentials or presented a valid token.
	ErrAccountInactive = apperrors.ErrAccountInactive
	// ErrMissingCredentials means no usable Bearer authorization header.
	ErrMissingCredentials = apperrors.ErrMissingCredentials
	// ErrInvalidToken covers bad signatures, expiry, the wrong token kind and
	// tokens for accounts that no longer exist.
	ErrInvalidToken = apperrors.ErrInvalidToken
)
