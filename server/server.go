package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/mobile-musician-api/auth"
	"github.com/jrsteele09/mobile-musician-api/catalog"
	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/jrsteele09/mobile-musician-api/profiles"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Version is reported by the root endpoint.
var Version = "0.1.0"

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Services are the domain services the HTTP layer exposes.
type Services struct {
	Auth     *auth.AuthenticationService
	Profiles *profiles.Service
	Catalog  catalog.Repo
	Health   HealthChecker // nil means there is nothing to check (in-memory stores)

	// StaticDir is served under /static/. Empty disables the route.
	StaticDir string
}

type Server struct {
	env       string // Environment (e.g., "development", "production")
	prefix    string // API prefix, e.g. /api/v1
	mux       *http.ServeMux
	handler   http.Handler
	routes    []string
	config    config.Config
	auth      *auth.AuthenticationService
	resolver  IdentityResolver
	profiles  *profiles.Service
	catalog   catalog.Repo
	health    HealthChecker
	staticDir string
}

func New(config config.Config, services Services) (*Server, error) {
	if config == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if services.Auth == nil {
		return nil, errors.New("[Server New] authentication service is required")
	}
	if services.Profiles == nil {
		return nil, errors.New("[Server New] profile service is required")
	}
	if services.Catalog == nil {
		return nil, errors.New("[Server New] catalog repo is required")
	}

	s := &Server{
		env:       config.GetEnv(),
		prefix:    config.GetAPIPrefix(),
		mux:       http.NewServeMux(),
		config:    config,
		auth:      services.Auth,
		resolver:  services.Auth,
		profiles:  services.Profiles,
		catalog:   services.Catalog,
		health:    services.Health,
		staticDir: services.StaticDir,
	}

	s.initRoutes()
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.APIMiddleware()...)
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// api prefixes a route constant with the method and the configured API prefix.
func (s *Server) api(method, route string) string {
	return method + " " + s.prefix + route
}

func (s *Server) logRoutes() {
	if !s.config.IsDevelopment() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%s] %s", colourMethod(method), path)
}
