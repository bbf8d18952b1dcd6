package errors_test

import (
	stderrors "errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.Nil(t, apperrors.Wrapf(nil, "ignored"))

	err := apperrors.Wrapf(apperrors.ErrUserNotFound, "loading %s", "u1")
	require.EqualError(t, err, "loading u1: user not found")
	require.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}

func TestAsValidationError(t *testing.T) {
	require.NoError(t, apperrors.AsValidationError(nil))

	plain := stderrors.New("boom")
	require.Same(t, plain, apperrors.AsValidationError(plain))

	err := apperrors.AsValidationError(validation.Errors{"username": stderrors.New("too short")})
	var ve *apperrors.ValidationError
	require.True(t, apperrors.As(err, &ve))
	require.Contains(t, ve.Fields, "username")
	require.Contains(t, err.Error(), "username: too short")
}

func TestConflictError(t *testing.T) {
	err := error(&apperrors.ConflictError{Fields: validation.Errors{
		"username": stderrors.New("username already in use"),
		"email":    stderrors.New("email already in use"),
	}})
	require.EqualError(t, err, "email and username already in use")
	require.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	require.ErrorIs(t, err, apperrors.ErrEmailTaken)

	onlyEmail := error(&apperrors.ConflictError{Fields: validation.Errors{"email": stderrors.New("taken")}})
	require.ErrorIs(t, onlyEmail, apperrors.ErrEmailTaken)
	require.NotErrorIs(t, onlyEmail, apperrors.ErrUsernameTaken)
}
