package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/pkg/errors"
)

// SigningMethod maps an algorithm name such as "HS256" to its HMAC method.
func SigningMethod(algorithm string) (*jwt.SigningMethodHMAC, error) {
	switch strings.ToUpper(strings.TrimSpace(algorithm)) {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, errors.Errorf("unsupported signing algorithm %q", algorithm)
	}
}

// NewSigners builds the primary signer and the ordered fallback signers. Blank
// fallbacks and repeats of an earlier secret are skipped.
func NewSigners(algorithm, primary string, fallbacks []string) (Signer, []Signer, error) {
	if primary == "" {
		return nil, nil, errors.New("[token NewSigners] primary secret is required")
	}
	method, err := SigningMethod(algorithm)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[token NewSigners]")
	}

	seen := map[string]struct{}{primary: {}}
	alternates := make([]Signer, 0, len(fallbacks))
	for _, secret := range fallbacks {
		if secret == "" {
			continue
		}
		if _, ok := seen[secret]; ok {
			continue
		}
		seen[secret] = struct{}{}
		alternates = append(alternates, NewHMACSigner(secret, method))
	}
	return NewHMACSigner(primary, method), alternates, nil
}

// NewFromConfig builds a Manager from the token settings.
func NewFromConfig(c config.TokenConfig, options ...ManagerOption) (*Manager, error) {
	primary, fallbacks, err := NewSigners(c.GetAlgorithm(), c.GetSecretKey(), c.GetAlternativeSecretKeys())
	if err != nil {
		return nil, err
	}
	opts := []ManagerOption{
		WithFallbackSigners(fallbacks...),
		WithAccessTokenExpiry(c.GetAccessTokenExpiry()),
	}
	return New(primary, append(opts, options...)...), nil
}
