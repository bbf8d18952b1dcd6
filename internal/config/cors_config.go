package config

import (
	"encoding/json"
	"sort"
	"strings"
)

const corsOriginsVar = "BACKEND_CORS_ORIGINS"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
	"http://localhost:19006",
}

// GetAllowedOrigins accepts either a JSON array or a comma separated list.
func (Cors) GetAllowedOrigins() AllowedOrigins {
	origins := parseOrigins(GetEnv(corsOriginsVar, ""))
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}
	allowed := make(AllowedOrigins, len(origins))
	for _, origin := range origins {
		allowed[strings.TrimSuffix(origin, "/")] = nullValue{}
	}
	return allowed
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}

func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return list
		}
		raw = strings.Trim(raw, "[]")
	}
	var list []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.Trim(strings.TrimSpace(item), `"'`)
		if item != "" {
			list = append(list, item)
		}
	}
	return list
}
