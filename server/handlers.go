package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jrsteele09/mobile-musician-api/envelope"
	"github.com/rs/zerolog/log"
)

const healthTimeout = 5 * time.Second

// ServiceInfo is the payload of the root endpoint.
type ServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
}

// IndexHandler describes the running service
func (s *Server) IndexHandler() http.HandlerFunc {
	info := ServiceInfo{
		Name:        s.config.GetAppName(),
		Version:     Version,
		Environment: s.env,
		APIPrefix:   s.prefix,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		envelope.Success(w, http.StatusOK, "welcome to the "+info.Name+" API", info)
	}
}

// HealthHandler reports 503 when the database cannot be reached.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.health == nil {
			envelope.Write(w, envelope.Response{
				Code:    http.StatusOK,
				Message: "healthy",
				Meta:    map[string]string{"database": "in-memory"},
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			log.Err(err).Msg("health check failed")
			envelope.Write(w, envelope.Response{
				Code:    http.StatusServiceUnavailable,
				Message: "database unavailable",
				Meta:    map[string]string{"database": "down"},
			})
			return
		}
		envelope.Write(w, envelope.Response{
			Code:    http.StatusOK,
			Message: "healthy",
			Meta:    map[string]string{"database": "up"},
		})
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		envelope.Error(w, http.StatusNotFound, "not found")
	}
}
