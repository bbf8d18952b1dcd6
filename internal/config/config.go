package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	TokenConfig
	DatabaseConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	IsDevelopment() bool
	GetLogLevel() string
	GetServerHost() string
	GetPort() string
	GetBaseURL() string
	GetAPIPrefix() string
	GetBcryptCost() int
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type TokenConfig interface {
	GetSecretKey() string
	GetAlternativeSecretKeys() []string
	GetAlgorithm() string
	GetAccessTokenExpiry() time.Duration
}

type DatabaseConfig interface {
	GetDatabaseURL() string
	GetMaxOpenConns() int
	GetRunMigrations() bool
}

type StorageConfig interface {
	GetStaticDir() string
	GetS3Bucket() string
	GetS3Region() string
	GetS3Endpoint() string
	GetS3AccessKey() string
	GetS3SecretKey() string
	GetS3PublicURL() string
}

type mainConfig struct {
	EnvVars
	Cors
	Token
	Database
	Storage
}

// New returns the environment backed configuration. When CONFIG_FILE names a
// YAML file its values are used for any variable the environment leaves unset.
func New() (Config, error) {
	if path := GetEnv(configFileVar, ""); path != "" {
		if err := LoadFile(path); err != nil {
			return nil, err
		}
	}
	return mainConfig{}, nil
}
