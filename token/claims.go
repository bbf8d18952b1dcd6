package token

import "github.com/golang-jwt/jwt/v5"

// Token kinds carried in the "type" claim.
const (
	TypeAccessToken = "access_token"
	// TypeRefreshToken is reserved. Nothing issues refresh tokens yet.
	TypeRefreshToken = "refresh_token"
)

// Claims is the complete claim set of a bearer token. On the wire it is
// {"sub": "<account id>", "exp": <unix>, "iat": <unix>, "type": "access_token"}.
// New claims are added here as typed fields so that issuance and verification
// always agree on the shape.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// IsAccessToken reports whether the claims identify an account and are of the
// access token kind.
func (c *Claims) IsAccessToken() bool {
	return c != nil && c.Subject != "" && c.Type == TypeAccessToken
}
