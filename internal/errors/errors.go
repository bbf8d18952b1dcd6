package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the services and mapped to HTTP statuses in server/errors.go
var (
	// Login and account state
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrUserNotFound       = errors.New("user not found")

	// Bearer tokens
	ErrMissingCredentials = errors.New("missing or malformed credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Uniqueness on registration
	ErrUsernameTaken = errors.New("username already in use")
	ErrEmailTaken    = errors.New("email already in use")

	// Generic
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf prefixes err with a formatted message. A nil err stays nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is is errors.Is, re-exported so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
