package config

import "time"

const (
	secretKeyVar         = "SECRET_KEY"
	alternativeKeysVar   = "ALTERNATIVE_SECRET_KEYS"
	algorithmVar         = "ALGORITHM"
	accessTokenExpiryVar = "ACCESS_TOKEN_EXPIRE_MINUTES"
)

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetSecretKey() string {
	return GetEnv(secretKeyVar, "supersecretkey")
}

// GetAlternativeSecretKeys lists the secrets still accepted when verifying
// tokens, in the order they are tried after the primary secret.
func (Token) GetAlternativeSecretKeys() []string {
	return GetEnvList(alternativeKeysVar, []string{"hetic"})
}

func (Token) GetAlgorithm() string {
	return GetEnv(algorithmVar, "HS256")
}

func (Token) GetAccessTokenExpiry() time.Duration {
	minutes := GetEnvInt(accessTokenExpiryVar, 4320)
	if minutes <= 0 {
		minutes = 4320
	}
	return time.Duration(minutes) * time.Minute
}
