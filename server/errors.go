package server

import (
	"net/http"

	"github.com/jrsteele09/mobile-musician-api/envelope"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/profiles"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// bodyError marks a request body that could not be decoded.
type bodyError struct {
	err error
}

func (e *bodyError) Error() string {
	return "invalid request body: " + e.err.Error()
}

func (e *bodyError) Unwrap() error {
	return e.err
}

// writeError maps a service error to its envelope. Anything unrecognised is
// logged and reported as a 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *apperrors.ValidationError
		conflictErr   *apperrors.ConflictError
		unknownErr    *profiles.UnknownEntryError
		maxBytesErr   *http.MaxBytesError
		decodeErr     *bodyError
	)

	switch {
	case errors.As(err, &maxBytesErr), errors.Is(err, profiles.ErrImageTooLarge):
		envelope.Error(w, http.StatusRequestEntityTooLarge, "payload too large")
	case errors.As(err, &decodeErr):
		envelope.Error(w, http.StatusUnprocessableEntity, "validation error",
			envelope.FieldError{Field: "body", Message: decodeErr.Error(), Type: "validation_body"})
	case errors.As(err, &validationErr):
		envelope.Error(w, http.StatusUnprocessableEntity, "validation error", envelope.FromValidation(validationErr.Fields)...)
	case errors.As(err, &conflictErr):
		envelope.Error(w, http.StatusBadRequest, "username or email already in use", envelope.FromValidation(conflictErr.Fields)...)
	case errors.As(err, &unknownErr):
		envelope.Error(w, http.StatusUnprocessableEntity, "validation error",
			envelope.FieldError{Field: unknownErr.Field, Message: profiles.ErrUnknownCatalogEntry.Error(), Type: "validation_unknown_entry"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		envelope.Error(w, http.StatusUnauthorized, "invalid credentials",
			envelope.FieldError{Field: "credentials", Message: "incorrect email or password"})
	case errors.Is(err, apperrors.ErrAccountInactive):
		envelope.Error(w, http.StatusUnauthorized, "account inactive",
			envelope.FieldError{Field: "account", Message: "this account has been deactivated"})
	case errors.Is(err, apperrors.ErrMissingCredentials), errors.Is(err, apperrors.ErrInvalidToken):
		w.Header().Set("WWW-Authenticate", "Bearer")
		envelope.Error(w, http.StatusUnauthorized, "invalid or expired token",
			envelope.FieldError{Field: "authorization", Message: "a valid Bearer access token is required"})
	case errors.Is(err, apperrors.ErrUserNotFound):
		envelope.Error(w, http.StatusNotFound, "user not found")
	case errors.Is(err, apperrors.ErrNotFound):
		envelope.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, profiles.ErrUnsupportedImage):
		envelope.Error(w, http.StatusUnsupportedMediaType, "unsupported media type",
			envelope.FieldError{Field: "file", Message: "file must be a JPEG, PNG, GIF or WebP image"})
	case errors.Is(err, profiles.ErrEmptyImage):
		envelope.Error(w, http.StatusUnprocessableEntity, "validation error",
			envelope.FieldError{Field: "file", Message: "file is empty", Type: "validation_required"})
	default:
		log.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		envelope.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
