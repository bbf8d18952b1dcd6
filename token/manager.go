package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/mobile-musician-api/internal/errors"
	"github.com/pkg/errors"
)

const DefaultAccessTokenExpiry = 4320 * time.Minute

var (
	// ErrInvalidToken is the only error Decode returns. Bad signatures,
	// malformed input and expiry are deliberately indistinguishable.
	ErrInvalidToken   = apperrors.ErrInvalidToken
	ErrMissingSubject = errors.New("token subject is required")
)

// Manager issues access tokens with the primary signer and verifies them
// against the primary signer followed by each fallback signer in order.
type Manager struct {
	signer            Signer   // Signs every new token
	fallbackSigners   []Signer // Still accepted for verification, tried in order
	accessTokenExpiry time.Duration
	nowFunc           func() time.Time
}

type ManagerOption func(*Manager)

// WithFallbackSigners sets the alternate secrets accepted during verification.
func WithFallbackSigners(signers ...Signer) ManagerOption {
	return func(m *Manager) {
		m.fallbackSigners = append([]Signer(nil), signers...)
	}
}

func WithAccessTokenExpiry(expiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.accessTokenExpiry = expiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func New(signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer: signer,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.accessTokenExpiry <= 0 {
		m.accessTokenExpiry = DefaultAccessTokenExpiry
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

func (m *Manager) AccessTokenExpiry() time.Duration {
	return m.accessTokenExpiry
}

// Encode stamps iat, exp and the access token kind onto claims and signs them
// with the primary signer. Caller supplied values for those claims are
// overwritten.
func (m *Manager) Encode(claims Claims, ttl time.Duration) (string, error) {
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	now := m.nowFunc()
	claims.Type = TypeAccessToken
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	signed, err := m.signer.Sign(&claims)
	if err != nil {
		return "", errors.Wrap(err, "Manager.Encode")
	}
	return signed, nil
}

// CreateAccessToken issues an access token for the account with the given id.
func (m *Manager) CreateAccessToken(subject string) (string, error) {
	return m.Encode(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}, m.accessTokenExpiry)
}

// Decode verifies rawToken against each candidate secret in priority order.
// The first candidate for which both the signature and the expiry check pass
// wins. An expired token under one secret still gets tried under the rest.
func (m *Manager) Decode(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrInvalidToken
	}
	if claims, err := m.parse(rawToken, m.signer); err == nil {
		return claims, nil
	}
	for _, signer := range m.fallbackSigners {
		if claims, err := m.parse(rawToken, signer); err == nil {
			return claims, nil
		}
	}
	return nil, ErrInvalidToken
}

func (m *Manager) parse(rawToken string, signer Signer) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, signer.GetVerificationKey,
		jwt.WithValidMethods([]string{signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFunc),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}
