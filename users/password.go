package users

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused
	MaxPasswordBytes = 72
)

// Hasher turns passwords into bcrypt digests and verifies candidates against
// them. The zero value uses bcrypt.DefaultCost.
type Hasher struct {
	cost int
}

type HasherOption func(*Hasher)

// WithCost sets the bcrypt work factor. Out of range values are ignored.
func WithCost(cost int) HasherOption {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

func NewHasher(options ...HasherOption) Hasher {
	h := Hasher{cost: bcrypt.DefaultCost}
	for _, opt := range options {
		opt(&h)
	}
	return h
}

func (h Hasher) Hash(password string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Check reports whether password matches digest. A malformed digest is simply
// a mismatch.
func (h Hasher) Check(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}

var defaultHasher = NewHasher()

func HashPassword(password string) (string, error) {
	return defaultHasher.Hash(password)
}

func CheckPasswordHash(password, hash string) bool {
	return defaultHasher.Check(password, hash)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains at least one number
// - Contains at least one uppercase letter
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes long", MaxPasswordBytes)
	}

	var (
		hasUpper  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	return nil
}
