package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	configFileVar  = "CONFIG_FILE"
	appNameVar     = "APP_NAME"
	environmentVar = "ENVIRONMENT"
	logLevelVar    = "LOG_LEVEL"
	serverHostVar  = "SERVER_HOST"
	serverPortVar  = "SERVER_PORT"
	apiPrefixVar   = "API_PREFIX"
	bcryptCostVar  = "BCRYPT_COST"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Mobile Musician")
}

func (EnvVars) GetEnv() string {
	return strings.ToLower(GetEnv(environmentVar, EnvDevelopment))
}

func (e EnvVars) IsDevelopment() bool {
	env := e.GetEnv()
	return env == EnvDevelopment || env == "dev"
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetServerHost() string {
	return strings.TrimSuffix(GetEnv(serverHostVar, "http://localhost"), "/")
}

// GetPort returns the listen address in the ":port" form used by http.Server.
func (EnvVars) GetPort() string {
	port := GetEnv(serverPortVar, "8000")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

// GetBaseURL is the externally reachable address, used to build links to
// locally stored uploads.
func (e EnvVars) GetBaseURL() string {
	return e.GetServerHost() + e.GetPort()
}

func (EnvVars) GetAPIPrefix() string {
	prefix := strings.TrimSuffix(GetEnv(apiPrefixVar, "/api/v1"), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func (EnvVars) GetBcryptCost() int {
	cost := GetEnvInt(bcryptCostVar, bcrypt.DefaultCost)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// GetEnv looks a variable up in the process environment, then in values loaded
// from the config file, and finally falls back to defaultValue.
func GetEnv(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if value, ok := fileValue(envVar); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvBool(envVar string, defaultValue bool) bool {
	value, err := strconv.ParseBool(GetEnv(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvList splits a comma separated variable, dropping blank entries.
func GetEnvList(envVar string, defaultValue []string) []string {
	raw := GetEnv(envVar, "")
	if raw == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
