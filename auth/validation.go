package auth

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/jrsteele09/mobile-musician-api/users"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 255 // users.email is VARCHAR(255)
)

// RegistrationRequest is the input of account registration.
type RegistrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the credential pair exchanged for an access token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validator provides centralized validation of authentication input. Every
// rule here runs before any storage access.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegistration returns a *errors.ValidationError listing every
// offending field, or nil.
func (v *Validator) ValidateRegistration(req RegistrationRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Username,
			validation.Required,
			validation.RuneLength(MinUsernameLength, MaxUsernameLength),
		),
		validation.Field(&req.Email,
			validation.Required,
			validation.RuneLength(0, MaxEmailLength),
			is.EmailFormat,
		),
		validation.Field(&req.Password,
			validation.Required,
			validation.By(passwordStrength),
		),
	)
	return apperrors.AsValidationError(err)
}

// ValidateLogin only checks presence. Malformed emails are treated as
// unknown accounts.
func (v *Validator) ValidateLogin(req LoginRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
	return apperrors.AsValidationError(err)
}

func passwordStrength(value interface{}) error {
	password, _ := value.(string)
	if err := users.ValidatePasswordStrength(password); err != nil {
		return validation.NewError("validation_password_strength", err.Error())
	}
	return nil
}

func (r RegistrationRequest) normalized() RegistrationRequest {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = users.NormalizeEmail(r.Email)
	return r
}
